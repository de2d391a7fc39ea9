package server

import (
	"sync"
	"time"
)

const (
	phaseLobby    = "lobby"
	phasePlaying  = "playing"
	phaseVoting   = "voting"
	phaseResults  = "results"
	phaseFinished = "finished"
)

// placeholderWord is recorded on behalf of a player whose turn clock ran out.
const placeholderWord = "(No answer)"

type Room struct {
	mu     sync.Mutex
	closed bool

	Code          string
	Players       []Player
	CurrentWord   string
	WordCategory  string
	CurrentRound  int
	MaxRounds     int
	Phase         string
	CurrentTurnID string
	Submissions   []WordSubmission
	Votes         map[string]string
	TimeLeft      int
	CreatedAt     time.Time

	DBID      uint
	RoundDBID uint
}

type Player struct {
	ID         string
	Name       string
	Score      int
	IsHost     bool
	IsImpostor bool
	Connected  bool
	JoinedAt   time.Time
	DBID       uint
}

type WordSubmission struct {
	PlayerID    string
	Word        string
	SubmittedAt time.Time
}

// RoundResult is derived at the voting-to-results transition and discarded
// after broadcast; only the cumulative scores on the players persist.
type RoundResult struct {
	ImpostorID    string         `json:"impostor_id"`
	CorrectVoters []string       `json:"correct_voters"`
	Scores        map[string]int `json:"scores"`
}

type PlayerScore struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

func (r *Room) playerByID(id string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

func (r *Room) playerIndex(id string) int {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) impostor() *Player {
	for i := range r.Players {
		if r.Players[i].IsImpostor {
			return &r.Players[i]
		}
	}
	return nil
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
