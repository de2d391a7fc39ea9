package server

import (
	"log"
	"time"
)

type roomClock struct {
	stop chan struct{}
}

// startClock arms the countdown for a room, replacing any clock already
// running for it. Two clocks for the same room never coexist: the previous
// one is stopped before the new one is stored.
func (s *Server) startClock(code, phase string, seconds int, expired func(code string)) {
	s.clocksMu.Lock()
	if existing, ok := s.clocks[code]; ok {
		close(existing.stop)
	}
	clock := &roomClock{stop: make(chan struct{})}
	s.clocks[code] = clock
	s.clocksMu.Unlock()

	_, _ = s.store.UpdateRoom(code, func(room *Room) error {
		room.TimeLeft = seconds
		return nil
	})
	go s.runClock(code, phase, seconds, clock, expired)
}

func (s *Server) cancelClock(code string) {
	s.clocksMu.Lock()
	defer s.clocksMu.Unlock()
	if clock, ok := s.clocks[code]; ok {
		close(clock.stop)
		delete(s.clocks, code)
	}
}

// startTurnClock pins the clock to the holder and round it was armed for.
// The phase alone cannot distinguish one turn from the next within a round,
// so a late expiry re-checks both before it may steal a turn.
func (s *Server) startTurnClock(code string) {
	var holder string
	var round int
	if _, err := s.store.UpdateRoom(code, func(room *Room) error {
		holder = room.CurrentTurnID
		round = room.CurrentRound
		return nil
	}); err != nil {
		return
	}
	s.startClock(code, phasePlaying, s.cfg.TurnDurationSeconds, func(code string) {
		s.turnClockExpired(code, holder, round)
	})
}

func (s *Server) startVotingClock(code string) {
	var round int
	if _, err := s.store.UpdateRoom(code, func(room *Room) error {
		round = room.CurrentRound
		return nil
	}); err != nil {
		return
	}
	s.startClock(code, phaseVoting, s.cfg.VoteDurationSeconds, func(code string) {
		s.votingClockExpired(code, round)
	})
}

// runClock ticks once a second, writing the remaining time into the room and
// broadcasting it. Every tick re-checks the phase under the room lock, so a
// clock that lost its phase to a player action dies silently.
func (s *Server) runClock(code, phase string, seconds int, clock *roomClock, expired func(code string)) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	remaining := seconds
	for {
		select {
		case <-clock.stop:
			return
		case <-ticker.C:
			remaining--
			if _, err := s.store.UpdateRoom(code, func(room *Room) error {
				if room.Phase != phase {
					return errClockStale
				}
				room.TimeLeft = remaining
				return nil
			}); err != nil {
				return
			}
			s.hub.Broadcast(code, map[string]any{
				"type":      "timer-tick",
				"time_left": remaining,
			})
			if remaining <= 0 {
				expired(code)
				return
			}
		}
	}
}

// turnClockExpired records the placeholder submission on behalf of the
// turn holder the clock was armed for and advances the round exactly as a
// real submission would. A room that already moved on — a different phase,
// round, or holder — is left alone.
func (s *Server) turnClockExpired(code, holder string, round int) {
	var submission WordSubmission
	var snap map[string]any
	var phase, turnID string
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if room.Phase != phasePlaying || room.CurrentRound != round || room.CurrentTurnID != holder || holder == "" {
			return errClockStale
		}
		if err := room.submitWord(room.CurrentTurnID, placeholderWord, timeNowUTC()); err != nil {
			return err
		}
		submission = room.Submissions[len(room.Submissions)-1]
		snap = snapshot(room)
		phase = room.Phase
		turnID = room.CurrentTurnID
		return nil
	})
	if err != nil {
		return
	}
	log.Printf("turn timed out room_code=%s player_id=%s", code, submission.PlayerID)
	if err := s.persistSubmission(room, submission); err != nil {
		log.Printf("persist submission failed room_code=%s error=%v", code, err)
	}
	s.afterSubmission(code, submission, snap, phase, turnID)
}

// votingClockExpired force-closes the vote regardless of how many votes
// arrived; players who never voted simply contribute no accusation. Only
// the round the clock was armed for may be closed.
func (s *Server) votingClockExpired(code string, round int) {
	var result RoundResult
	var snap map[string]any
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if room.Phase != phaseVoting || room.CurrentRound != round {
			return errClockStale
		}
		r, err := room.enterResults()
		if err != nil {
			return err
		}
		result = r
		snap = snapshot(room)
		return nil
	})
	if err != nil {
		if err != errClockStale && err != ErrRoomNotFound {
			log.Printf("voting close failed room_code=%s error=%v", code, err)
		}
		return
	}
	log.Printf("voting timed out room_code=%s", code)
	if err := s.persistRoundResult(room, result); err != nil {
		log.Printf("persist results failed room_code=%s error=%v", code, err)
	}
	s.broadcastRoundResults(code, result, snap)
}
