package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

type wsHub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]string
}

func newWSHub() *wsHub {
	return &wsHub{
		rooms: make(map[string]map[*websocket.Conn]string),
	}
}

func (h *wsHub) Add(code string, conn *websocket.Conn, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[code]
	if group == nil {
		group = make(map[*websocket.Conn]string)
		h.rooms[code] = group
	}
	group[conn] = playerID
}

func (h *wsHub) Remove(code string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[code]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.rooms, code)
	}
}

// All writes happen under the hub mutex: gorilla connections allow one
// concurrent writer, and intents, clock ticks, and private sends for the
// same conn can otherwise race.

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	_ = conn.WriteMessage(websocket.TextMessage, data)
	h.mu.Unlock()
}

func (h *wsHub) Broadcast(code string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	var dead []*websocket.Conn
	for conn := range h.rooms[code] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			dead = append(dead, conn)
		}
	}
	h.mu.Unlock()
	for _, conn := range dead {
		h.Remove(code, conn)
	}
}

// SendToPlayer delivers a private payload to every connection the player
// holds in the room.
func (h *wsHub) SendToPlayer(code, playerID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	var dead []*websocket.Conn
	for conn, id := range h.rooms[code] {
		if id != playerID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			dead = append(dead, conn)
		}
	}
	h.mu.Unlock()
	for _, conn := range dead {
		h.Remove(code, conn)
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	code, ok := parseWebsocketPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	code = normalizeRoomCode(code)
	playerID := r.URL.Query().Get("player_id")

	var snap map[string]any
	var assignment *wordAssignment
	_, err := s.store.UpdateRoom(code, func(room *Room) error {
		if playerID != "" && room.playerByID(playerID) == nil {
			return ErrPlayerNotFound
		}
		snap = snapshot(room)
		if playerID != "" && (room.Phase == phasePlaying || room.Phase == phaseVoting) {
			for _, a := range wordAssignments(room, s.cfg.CoverWord) {
				if a.PlayerID == playerID {
					assignment = &a
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected room_code=%s player_id=%s remote=%s", code, playerID, r.RemoteAddr)
	s.hub.Add(code, conn, playerID)
	s.hub.Send(conn, snap)
	if assignment != nil {
		s.hub.Send(conn, map[string]any{
			"type": "word-assigned",
			"word": assignment.Word,
		})
	}
	go s.readWS(code, playerID, conn)
}

// readWS drains the connection until it drops. A dropped connection is a
// disconnect: the player is removed from the room, not suspended.
func (s *Server) readWS(code, playerID string, conn *websocket.Conn) {
	defer s.hub.Remove(code, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected room_code=%s player_id=%s error=%v", code, playerID, err)
			if playerID != "" {
				s.leaveRoom(code, playerID)
			}
			return
		}
	}
}
