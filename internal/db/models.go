package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:12;uniqueIndex;not null"`
	Phase     string    `gorm:"size:32;not null"`
	MaxRounds int       `gorm:"not null;default:5"`
	Category  string    `gorm:"size:32"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Players   []Player
	Rounds    []Round
	Events    []Event
}

type Player struct {
	ID        uint      `gorm:"primaryKey"`
	RoomID    uint      `gorm:"index;not null;uniqueIndex:idx_players_room_name"`
	Name      string    `gorm:"size:64;not null;uniqueIndex:idx_players_room_name"`
	IsHost    bool      `gorm:"not null;default:false"`
	Score     int       `gorm:"not null;default:0"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Words     []Submission
	Votes     []Vote `gorm:"foreignKey:VoterID"`
	Events    []Event
}

type Round struct {
	ID        uint      `gorm:"primaryKey"`
	RoomID    uint      `gorm:"index;not null;uniqueIndex:idx_rounds_room_number"`
	Number    int       `gorm:"not null;uniqueIndex:idx_rounds_room_number"`
	Word      string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Words     []Submission
	Votes     []Vote
}

type Submission struct {
	ID        uint      `gorm:"primaryKey"`
	RoundID   uint      `gorm:"index;not null"`
	PlayerID  uint      `gorm:"index;not null"`
	Word      string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	RoundID   uint      `gorm:"index;not null;uniqueIndex:idx_votes_round_voter"`
	VoterID   uint      `gorm:"index;not null;uniqueIndex:idx_votes_round_voter"`
	AccusedID uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	RoomID    uint           `gorm:"index;not null"`
	RoundID   *uint          `gorm:"index"`
	PlayerID  *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
