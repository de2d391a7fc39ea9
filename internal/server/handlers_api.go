package server

import (
	"log"
	"net/http"

	"white-game/internal/words"
)

type createRoomRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

type wordRequest struct {
	PlayerID string `json:"player_id"`
	Word     string `json:"word"`
}

type voteRequest struct {
	PlayerID  string `json:"player_id"`
	AccusedID string `json:"accused_id"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Category != "" && !words.IsCategory(req.Category) {
		writeError(w, http.StatusBadRequest, "unknown word category")
		return
	}

	room, host := s.store.CreateRoom(name, req.Category, s.cfg.MaxRounds)
	if err := s.persistRoom(room); err != nil {
		log.Printf("persist room failed room_code=%s error=%v", room.Code, err)
	}
	if err := s.persistPlayer(room, *host); err != nil {
		log.Printf("persist player failed room_code=%s error=%v", room.Code, err)
	}
	log.Printf("room created room_code=%s host=%s", room.Code, name)
	writeJSON(w, http.StatusCreated, map[string]string{
		"room_code": room.Code,
		"player_id": host.ID,
	})
}

func (s *Server) handleRoomStatus(w http.ResponseWriter, r *http.Request) {
	code, action, ok := parseRoomPath(r.URL.Path)
	if !ok || action != "" {
		http.NotFound(w, r)
		return
	}
	code = normalizeRoomCode(code)
	if !validRoomCode(code) {
		http.NotFound(w, r)
		return
	}
	summary, ok := s.store.RoomStatus(code)
	if !ok {
		writeRejection(w, ErrRoomNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRoomActions(w http.ResponseWriter, r *http.Request) {
	code, action, ok := parseRoomPath(r.URL.Path)
	if !ok || action == "" {
		http.NotFound(w, r)
		return
	}
	code = normalizeRoomCode(code)
	if !validRoomCode(code) {
		writeRejection(w, ErrRoomNotFound)
		return
	}
	switch action {
	case "join":
		s.handleJoin(w, r, code)
	case "start":
		s.handleStart(w, r, code)
	case "words":
		s.handleSubmitWord(w, r, code)
	case "votes":
		s.handleSubmitVote(w, r, code)
	case "next-round":
		s.handleNextRound(w, r, code)
	case "leave":
		s.handleLeave(w, r, code)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request, code string) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var player Player
	var snap map[string]any
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		joined, err := room.addPlayer(name, s.cfg.MaxPlayers)
		if err != nil {
			return err
		}
		player = *joined
		snap = snapshot(room)
		return nil
	})
	if err != nil {
		writeRejection(w, err)
		return
	}
	if err := s.persistPlayer(room, player); err != nil {
		log.Printf("persist player failed room_code=%s error=%v", code, err)
	}
	log.Printf("player joined room_code=%s player_id=%s name=%s", code, player.ID, name)
	s.hub.Broadcast(code, map[string]any{
		"type":      "player-joined",
		"player_id": player.ID,
		"name":      player.Name,
	})
	s.hub.Broadcast(code, snap)
	writeJSON(w, http.StatusOK, map[string]string{
		"room_code": code,
		"player_id": player.ID,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request, code string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var snap map[string]any
	var assignments []wordAssignment
	var turnID string
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		caller := room.playerByID(req.PlayerID)
		if caller == nil {
			return ErrPlayerNotFound
		}
		if !caller.IsHost {
			return ErrNotHost
		}
		if err := room.start(s.cfg.MinPlayers, words.Random(room.WordCategory)); err != nil {
			return err
		}
		snap = snapshot(room)
		assignments = wordAssignments(room, s.cfg.CoverWord)
		turnID = room.CurrentTurnID
		return nil
	})
	if err != nil {
		writeRejection(w, err)
		return
	}
	if err := s.persistRound(room); err != nil {
		log.Printf("persist round failed room_code=%s error=%v", code, err)
	}
	log.Printf("game started room_code=%s round=1", code)
	s.beginTurnPhase(code, snap, assignments, turnID)
	writeJSON(w, http.StatusOK, map[string]any{
		"phase": phasePlaying,
	})
}

// beginTurnPhase fans out the start of a playing phase: private words,
// the fresh snapshot, the turn announcement, and a new turn clock.
func (s *Server) beginTurnPhase(code string, snap map[string]any, assignments []wordAssignment, turnID string) {
	for _, assignment := range assignments {
		s.hub.SendToPlayer(code, assignment.PlayerID, map[string]any{
			"type": "word-assigned",
			"word": assignment.Word,
		})
	}
	s.hub.Broadcast(code, snap)
	s.hub.Broadcast(code, map[string]any{
		"type":      "turn-update",
		"player_id": turnID,
		"time_left": s.cfg.TurnDurationSeconds,
	})
	s.startTurnClock(code)
}

func (s *Server) handleSubmitWord(w http.ResponseWriter, r *http.Request, code string) {
	var req wordRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	word, err := validateWord(req.Word)
	if err != nil {
		writeRejection(w, err)
		return
	}

	var submission WordSubmission
	var snap map[string]any
	var phase, turnID string
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if room.Phase == phasePlaying && room.CurrentTurnID == req.PlayerID {
			player := room.playerByID(req.PlayerID)
			if player != nil && !player.IsImpostor && isRelatedWord(word, room.CurrentWord) {
				return ErrInvalidWord
			}
		}
		if err := room.submitWord(req.PlayerID, word, timeNowUTC()); err != nil {
			return err
		}
		submission = room.Submissions[len(room.Submissions)-1]
		snap = snapshot(room)
		phase = room.Phase
		turnID = room.CurrentTurnID
		return nil
	})
	if err != nil {
		writeRejection(w, err)
		return
	}
	if err := s.persistSubmission(room, submission); err != nil {
		log.Printf("persist submission failed room_code=%s error=%v", code, err)
	}
	log.Printf("word submitted room_code=%s player_id=%s", code, req.PlayerID)
	s.afterSubmission(code, submission, snap, phase, turnID)
	writeJSON(w, http.StatusOK, map[string]any{
		"phase": phase,
	})
}

// afterSubmission fans out a recorded submission and arms whichever clock
// the resulting phase needs. Real and synthetic submissions share it.
func (s *Server) afterSubmission(code string, submission WordSubmission, snap map[string]any, phase, turnID string) {
	s.hub.Broadcast(code, map[string]any{
		"type":       "word-submitted",
		"submission": submissionPayload(submission),
	})
	s.hub.Broadcast(code, snap)
	if phase == phaseVoting {
		s.hub.Broadcast(code, map[string]any{
			"type":      "voting-started",
			"time_left": s.cfg.VoteDurationSeconds,
		})
		s.startVotingClock(code)
		return
	}
	s.hub.Broadcast(code, map[string]any{
		"type":      "turn-update",
		"player_id": turnID,
		"time_left": s.cfg.TurnDurationSeconds,
	})
	s.startTurnClock(code)
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request, code string) {
	var req voteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var result *RoundResult
	var snap map[string]any
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		if err := room.submitVote(req.PlayerID, req.AccusedID); err != nil {
			return err
		}
		if room.allVoted() {
			r, err := room.enterResults()
			if err != nil {
				return err
			}
			result = &r
		}
		snap = snapshot(room)
		return nil
	})
	if err != nil {
		writeRejection(w, err)
		return
	}
	if err := s.persistVote(room, req.PlayerID, req.AccusedID); err != nil {
		log.Printf("persist vote failed room_code=%s error=%v", code, err)
	}
	log.Printf("vote submitted room_code=%s voter_id=%s accused_id=%s", code, req.PlayerID, req.AccusedID)
	if result != nil {
		s.cancelClock(code)
		if err := s.persistRoundResult(room, *result); err != nil {
			log.Printf("persist results failed room_code=%s error=%v", code, err)
		}
		s.broadcastRoundResults(code, *result, snap)
	} else {
		s.hub.Broadcast(code, snap)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"votes_count": snap["votes_count"],
	})
}

func (s *Server) broadcastRoundResults(code string, result RoundResult, snap map[string]any) {
	s.hub.Broadcast(code, snap)
	s.hub.Broadcast(code, map[string]any{
		"type":           "round-results",
		"impostor_id":    result.ImpostorID,
		"correct_voters": result.CorrectVoters,
		"scores":         result.Scores,
	})
}

func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request, code string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var snap map[string]any
	var assignments []wordAssignment
	var standings []PlayerScore
	var phase, turnID string
	var round int
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		caller := room.playerByID(req.PlayerID)
		if caller == nil {
			return ErrPlayerNotFound
		}
		if !caller.IsHost {
			return ErrNotHost
		}
		if err := room.nextRound(words.Random(room.WordCategory)); err != nil {
			return err
		}
		snap = snapshot(room)
		phase = room.Phase
		round = room.CurrentRound
		if phase == phaseFinished {
			standings = FinalScores(room)
		} else {
			assignments = wordAssignments(room, s.cfg.CoverWord)
			turnID = room.CurrentTurnID
		}
		return nil
	})
	if err != nil {
		writeRejection(w, err)
		return
	}
	if phase == phaseFinished {
		s.cancelClock(code)
		if err := s.persistEvent(room, "game_finished", EventPayload{Phase: phaseFinished}); err != nil {
			log.Printf("persist event failed room_code=%s error=%v", code, err)
		}
		log.Printf("game finished room_code=%s", code)
		s.hub.Broadcast(code, snap)
		s.hub.Broadcast(code, map[string]any{
			"type":   "game-over",
			"scores": standings,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"phase":  phase,
			"scores": standings,
		})
		return
	}
	if err := s.persistRound(room); err != nil {
		log.Printf("persist round failed room_code=%s error=%v", code, err)
	}
	log.Printf("next round started room_code=%s round=%d", code, round)
	s.beginTurnPhase(code, snap, assignments, turnID)
	writeJSON(w, http.StatusOK, map[string]any{
		"phase": phase,
		"round": round,
	})
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request, code string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.leaveRoom(code, req.PlayerID); err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "left",
	})
}

// leaveRoom removes a member in any phase; explicit leave intents and
// websocket disconnects both land here. Departure of the last member
// destroys the room and its clock.
func (s *Server) leaveRoom(code, playerID string) error {
	var out leaveOutcome
	var snap map[string]any
	var turnID string
	room, err := s.store.UpdateRoom(code, func(room *Room) error {
		o, err := room.removePlayer(playerID)
		if err != nil {
			return err
		}
		out = o
		if !o.empty {
			snap = snapshot(room)
			turnID = room.CurrentTurnID
		}
		return nil
	})
	if err != nil {
		return err
	}
	if out.resultErr != nil {
		log.Printf("round scoring failed room_code=%s error=%v", code, out.resultErr)
	}
	log.Printf("player left room_code=%s player_id=%s", code, playerID)
	if err := s.persistEvent(room, "player_left", EventPayload{PlayerName: out.departed.Name, PlayerID: playerID}); err != nil {
		log.Printf("persist event failed room_code=%s error=%v", code, err)
	}

	if out.empty {
		s.cancelClock(code)
		s.store.DeleteRoom(code)
		log.Printf("room deleted room_code=%s reason=empty", code)
		return nil
	}

	s.hub.Broadcast(code, map[string]any{
		"type":      "player-left",
		"player_id": playerID,
	})
	s.hub.Broadcast(code, snap)
	switch {
	case out.enteredVoting:
		s.hub.Broadcast(code, map[string]any{
			"type":      "voting-started",
			"time_left": s.cfg.VoteDurationSeconds,
		})
		s.startVotingClock(code)
	case out.result != nil:
		s.cancelClock(code)
		if err := s.persistRoundResult(room, *out.result); err != nil {
			log.Printf("persist results failed room_code=%s error=%v", code, err)
		}
		s.broadcastRoundResults(code, *out.result, snap)
	case out.turnChanged:
		s.hub.Broadcast(code, map[string]any{
			"type":      "turn-update",
			"player_id": turnID,
			"time_left": s.cfg.TurnDurationSeconds,
		})
		s.startTurnClock(code)
	}
	return nil
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": words.Categories(),
	})
}
