package server

import (
	"net/http"
	"sync"

	"white-game/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store    *Store
	db       *gorm.DB
	hub      *wsHub
	cfg      config.Config
	clocksMu sync.Mutex
	clocks   map[string]*roomClock
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:  NewStore(),
		db:     conn,
		hub:    newWSHub(),
		cfg:    cfg,
		clocks: make(map[string]*roomClock),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/rooms/", s.handleRoomStatus)
	mux.HandleFunc("POST /api/rooms/", s.handleRoomActions)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /ws/rooms/", s.handleWebsocket)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

// Close stops every running room clock. Rooms themselves are in-memory and
// need no teardown beyond that.
func (s *Server) Close() {
	s.clocksMu.Lock()
	defer s.clocksMu.Unlock()
	for code, clock := range s.clocks {
		close(clock.stop)
		delete(s.clocks, code)
	}
}
