package server

import (
	"crypto/rand"
	"sync"

	"white-game/internal/web"

	"github.com/google/uuid"
)

// Store is the room registry. The registry mutex guards only the map;
// every mutation of a room happens under that room's own lock via
// UpdateRoom, so intents and clock callbacks serialize per room while
// distinct rooms stay fully independent.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

func (s *Store) CreateRoom(hostName, category string, maxRounds int) (*Room, *Player) {
	host := Player{
		ID:        uuid.NewString(),
		Name:      hostName,
		IsHost:    true,
		Connected: true,
		JoinedAt:  timeNowUTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := newRoomCode()
	for _, taken := s.rooms[code]; taken; _, taken = s.rooms[code] {
		code = newRoomCode()
	}
	room := &Room{
		Code:         code,
		Players:      []Player{host},
		WordCategory: category,
		MaxRounds:    maxRounds,
		Phase:        phaseLobby,
		Votes:        make(map[string]string),
		CreatedAt:    timeNowUTC(),
	}
	s.rooms[code] = room
	return room, &room.Players[0]
}

func (s *Store) GetRoom(code string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	return room, ok
}

// UpdateRoom runs update with the room locked. Any error from update is
// returned unchanged and implies the room was left untouched.
func (s *Store) UpdateRoom(code string, update func(room *Room) error) (*Room, error) {
	s.mu.RLock()
	room, ok := s.rooms[code]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.closed {
		return nil, ErrRoomNotFound
	}
	if err := update(room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom removes the room from the registry and marks it closed so
// that callers holding a stale pointer fail their next update.
func (s *Store) DeleteRoom(code string) {
	s.mu.Lock()
	room, ok := s.rooms[code]
	delete(s.rooms, code)
	s.mu.Unlock()
	if !ok {
		return
	}
	room.mu.Lock()
	room.closed = true
	room.mu.Unlock()
}

// RoomStatus returns the public view of a room: no player identities and
// never the secret word.
func (s *Store) RoomStatus(code string) (web.RoomSummary, bool) {
	var summary web.RoomSummary
	_, err := s.UpdateRoom(code, func(room *Room) error {
		summary = web.RoomSummary{
			Code:         room.Code,
			Phase:        room.Phase,
			Players:      len(room.Players),
			CurrentRound: room.CurrentRound,
			MaxRounds:    room.MaxRounds,
		}
		return nil
	})
	return summary, err == nil
}

func newRoomCode() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
