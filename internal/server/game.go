package server

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The session state machine. Every function in this file expects to run
// under the room's lock (inside a Store.UpdateRoom closure) and returns a
// sentinel error without mutating the room when a precondition fails.

func (r *Room) addPlayer(name string, maxPlayers int) (*Player, error) {
	if r.Phase != phaseLobby {
		return nil, ErrGameInProgress
	}
	if len(r.Players) >= maxPlayers {
		return nil, ErrRoomFull
	}
	r.Players = append(r.Players, Player{
		ID:        uuid.NewString(),
		Name:      name,
		Connected: true,
		JoinedAt:  timeNowUTC(),
	})
	return &r.Players[len(r.Players)-1], nil
}

func (r *Room) start(minPlayers int, word string) error {
	if r.Phase != phaseLobby {
		return ErrWrongPhase
	}
	if len(r.Players) < minPlayers {
		return ErrNotEnoughPlayers
	}
	r.beginRound(1, word)
	return nil
}

// beginRound resets per-round state: fresh submissions and votes, a new
// secret word, exactly one freshly drawn impostor, turn to the first player.
func (r *Room) beginRound(round int, word string) {
	r.CurrentRound = round
	r.CurrentWord = word
	r.Submissions = nil
	r.Votes = make(map[string]string)
	for i := range r.Players {
		r.Players[i].IsImpostor = false
	}
	r.Players[rand.Intn(len(r.Players))].IsImpostor = true
	r.CurrentTurnID = r.Players[0].ID
	r.Phase = phasePlaying
}

func (r *Room) submitWord(playerID, text string, at time.Time) error {
	if r.Phase != phasePlaying {
		return ErrWrongPhase
	}
	if r.CurrentTurnID != playerID {
		return ErrNotYourTurn
	}
	r.Submissions = append(r.Submissions, WordSubmission{
		PlayerID:    playerID,
		Word:        strings.TrimSpace(text),
		SubmittedAt: at,
	})
	r.advanceTurn(r.playerIndex(playerID))
	return nil
}

// advanceTurn implements the next-turn algorithm: once every member has a
// submission the round moves to voting, otherwise the turn passes to the
// next player in cyclic join order after fromIndex.
func (r *Room) advanceTurn(fromIndex int) {
	if len(r.Submissions) >= len(r.Players) {
		r.enterVoting()
		return
	}
	r.CurrentTurnID = r.Players[(fromIndex+1)%len(r.Players)].ID
}

func (r *Room) enterVoting() {
	r.Votes = make(map[string]string)
	r.CurrentTurnID = ""
	r.Phase = phaseVoting
}

func (r *Room) submitVote(voterID, accusedID string) error {
	if r.Phase != phaseVoting {
		return ErrWrongPhase
	}
	if voterID == accusedID {
		return ErrSelfVote
	}
	if r.playerByID(voterID) == nil || r.playerByID(accusedID) == nil {
		return ErrPlayerNotFound
	}
	// Last vote wins: a repeat vote from the same voter overwrites.
	r.Votes[voterID] = accusedID
	return nil
}

func (r *Room) allVoted() bool {
	return len(r.Votes) >= len(r.Players)
}

// enterResults closes the vote: it computes the round result, applies the
// point deltas exactly once, and clears the impostor flag so that no player
// carries it outside the playing/voting phases.
func (r *Room) enterResults() (RoundResult, error) {
	result, err := CalculateRoundResults(r)
	if err != nil {
		return RoundResult{}, err
	}
	for i := range r.Players {
		r.Players[i].Score += result.Scores[r.Players[i].ID]
		r.Players[i].IsImpostor = false
	}
	r.Phase = phaseResults
	return result, nil
}

func (r *Room) nextRound(word string) error {
	if r.Phase != phaseResults {
		return ErrWrongPhase
	}
	if r.CurrentRound+1 > r.MaxRounds {
		r.CurrentRound++
		r.CurrentTurnID = ""
		r.Phase = phaseFinished
		return nil
	}
	r.beginRound(r.CurrentRound+1, word)
	return nil
}

type leaveOutcome struct {
	departed      Player
	empty         bool
	newHostID     string
	turnChanged   bool
	enteredVoting bool
	result        *RoundResult
	resultErr     error
}

// removePlayer takes a member out of the room in any phase. A departing
// turn holder is treated as a turn skip with no submission recorded, and
// the all-submitted / all-voted checks rerun after every removal so a
// shrinking room cannot stall below its completion threshold.
func (r *Room) removePlayer(playerID string) (leaveOutcome, error) {
	idx := r.playerIndex(playerID)
	if idx < 0 {
		return leaveOutcome{}, ErrPlayerNotFound
	}
	departed := r.Players[idx]
	departed.Connected = false
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	out := leaveOutcome{departed: departed}

	if len(r.Players) == 0 {
		out.empty = true
		return out, nil
	}

	if departed.IsHost {
		r.Players[0].IsHost = true
		out.newHostID = r.Players[0].ID
	}
	delete(r.Votes, departed.ID)

	// The impostor flag must stay on exactly one player mid-round.
	if departed.IsImpostor && (r.Phase == phasePlaying || r.Phase == phaseVoting) {
		r.Players[rand.Intn(len(r.Players))].IsImpostor = true
	}

	switch r.Phase {
	case phasePlaying:
		if len(r.Submissions) >= len(r.Players) {
			r.enterVoting()
			out.enteredVoting = true
		} else if r.CurrentTurnID == departed.ID {
			r.CurrentTurnID = r.Players[idx%len(r.Players)].ID
			out.turnChanged = true
		}
	case phaseVoting:
		if r.allVoted() {
			result, err := r.enterResults()
			if err != nil {
				out.resultErr = err
			} else {
				out.result = &result
			}
		}
	}
	return out, nil
}
