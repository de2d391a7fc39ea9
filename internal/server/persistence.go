package server

import (
	"encoding/json"
	"errors"

	"white-game/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Persistence is an audit trail, not a source of truth: rooms live in memory
// and are never restored from these tables. Every function here is a no-op
// when the server runs without a database.

func (s *Server) persistRoom(room *Room) error {
	if s.db == nil {
		return nil
	}
	record := db.Room{
		Code:      room.Code,
		Phase:     room.Phase,
		MaxRounds: room.MaxRounds,
		Category:  room.WordCategory,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	if record.ID != 0 {
		_, _ = s.store.UpdateRoom(room.Code, func(room *Room) error {
			room.DBID = record.ID
			return nil
		})
	}
	return s.persistEvent(room, "room_created", EventPayload{
		RoomCode: room.Code,
	})
}

func (s *Server) persistPlayer(room *Room, player Player) error {
	if s.db == nil {
		return nil
	}
	if player.DBID != 0 {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	record := db.Player{
		RoomID:   room.DBID,
		Name:     player.Name,
		IsHost:   player.IsHost,
		JoinedAt: player.JoinedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			existing, lookupErr := s.findPlayerDBID(room.DBID, player.Name)
			if lookupErr == nil && existing != 0 {
				record.ID = existing
			} else {
				return err
			}
		} else {
			return err
		}
	}
	_, _ = s.store.UpdateRoom(room.Code, func(room *Room) error {
		if p := room.playerByID(player.ID); p != nil {
			p.DBID = record.ID
		}
		return nil
	})
	return s.persistEvent(room, "player_joined", EventPayload{
		PlayerName: player.Name,
		PlayerID:   player.ID,
	})
}

func (s *Server) persistRound(room *Room) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	record := db.Round{
		RoomID: room.DBID,
		Number: room.CurrentRound,
		Word:   room.CurrentWord,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	if record.ID == 0 {
		existing, err := s.findRoundDBID(room.DBID, room.CurrentRound)
		if err != nil {
			return err
		}
		record.ID = existing
	}
	_, _ = s.store.UpdateRoom(room.Code, func(room *Room) error {
		room.RoundDBID = record.ID
		return nil
	})
	if err := s.db.Model(&db.Room{}).Where("id = ?", room.DBID).Update("phase", room.Phase).Error; err != nil {
		return err
	}
	return s.persistEvent(room, "round_started", EventPayload{
		Round: room.CurrentRound,
		Phase: room.Phase,
	})
}

func (s *Server) persistSubmission(room *Room, submission WordSubmission) error {
	if s.db == nil {
		return nil
	}
	if room.RoundDBID == 0 {
		return s.persistEvent(room, "word_submitted", EventPayload{
			PlayerID: submission.PlayerID,
			Word:     submission.Word,
		})
	}
	playerDBID := s.playerDBID(room, submission.PlayerID)
	if playerDBID == 0 {
		return errors.New("player not persisted")
	}
	record := db.Submission{
		RoundID:  room.RoundDBID,
		PlayerID: playerDBID,
		Word:     submission.Word,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	return s.persistEvent(room, "word_submitted", EventPayload{
		PlayerID: submission.PlayerID,
	})
}

func (s *Server) persistVote(room *Room, voterID, accusedID string) error {
	if s.db == nil {
		return nil
	}
	if room.RoundDBID == 0 {
		return s.persistEvent(room, "vote_submitted", EventPayload{
			PlayerID: voterID,
		})
	}
	voterDBID := s.playerDBID(room, voterID)
	accusedDBID := s.playerDBID(room, accusedID)
	if voterDBID == 0 || accusedDBID == 0 {
		return errors.New("player not persisted")
	}
	record := db.Vote{
		RoundID:   room.RoundDBID,
		VoterID:   voterDBID,
		AccusedID: accusedDBID,
	}
	// Last vote wins in memory, so a repeat vote overwrites here too.
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "round_id"}, {Name: "voter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"accused_id", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return err
	}
	return s.persistEvent(room, "vote_submitted", EventPayload{
		PlayerID: voterID,
	})
}

func (s *Server) persistRoundResult(room *Room, result RoundResult) error {
	if s.db == nil {
		return nil
	}
	for playerID, delta := range result.Scores {
		if delta == 0 {
			continue
		}
		dbID := s.playerDBID(room, playerID)
		if dbID == 0 {
			continue
		}
		if err := s.db.Model(&db.Player{}).
			Where("id = ?", dbID).
			Update("score", gorm.Expr("score + ?", delta)).Error; err != nil {
			return err
		}
	}
	if room.DBID != 0 {
		if err := s.db.Model(&db.Room{}).Where("id = ?", room.DBID).Update("phase", room.Phase).Error; err != nil {
			return err
		}
	}
	return s.persistEvent(room, "round_results", EventPayload{
		Round:      room.CurrentRound,
		ImpostorID: result.ImpostorID,
		Scores:     result.Scores,
	})
}

func (s *Server) persistEvent(room *Room, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not persisted")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		RoomID:   room.DBID,
		RoundID:  s.resolveEventRoundID(room),
		PlayerID: s.resolveEventPlayerID(room, payload),
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	return s.db.Create(&event).Error
}

func (s *Server) resolveEventRoundID(room *Room) *uint {
	if room.RoundDBID == 0 {
		return nil
	}
	id := room.RoundDBID
	return &id
}

func (s *Server) resolveEventPlayerID(room *Room, payload EventPayload) *uint {
	if payload.PlayerID == "" {
		return nil
	}
	dbID := s.playerDBID(room, payload.PlayerID)
	if dbID == 0 {
		return nil
	}
	return &dbID
}

func (s *Server) ensureRoomDBID(room *Room) error {
	if s.db == nil || room.DBID != 0 {
		return nil
	}
	var record db.Room
	if err := s.db.Where("code = ?", room.Code).First(&record).Error; err != nil {
		return nil
	}
	_, _ = s.store.UpdateRoom(room.Code, func(room *Room) error {
		room.DBID = record.ID
		return nil
	})
	return nil
}

func (s *Server) playerDBID(room *Room, playerID string) uint {
	var dbID uint
	_, _ = s.store.UpdateRoom(room.Code, func(room *Room) error {
		if p := room.playerByID(playerID); p != nil {
			dbID = p.DBID
		}
		return nil
	})
	return dbID
}

func (s *Server) findPlayerDBID(roomDBID uint, name string) (uint, error) {
	var record db.Player
	if err := s.db.Where("room_id = ? AND name = ?", roomDBID, name).First(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

func (s *Server) findRoundDBID(roomDBID uint, number int) (uint, error) {
	var record db.Round
	if err := s.db.Where("room_id = ? AND number = ?", roomDBID, number).First(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
