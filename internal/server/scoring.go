package server

import (
	"errors"
	"sort"
)

const (
	correctVotePoints = 10
	deceptionPoints   = 15
)

// CalculateRoundResults computes the round outcome from the room's vote map
// without mutating anything. Each voter whose accusation names the impostor
// earns 10 points; the impostor earns 15 when strictly fewer than half the
// members (rounded down) accused them. It is a broken state-machine
// invariant, not a user error, for no impostor to be present here.
func CalculateRoundResults(room *Room) (RoundResult, error) {
	impostor := room.impostor()
	if impostor == nil {
		return RoundResult{}, errors.New("no impostor in room")
	}
	if len(room.Players) == 0 {
		return RoundResult{}, errors.New("room has no players")
	}

	scores := make(map[string]int, len(room.Players))
	for _, player := range room.Players {
		scores[player.ID] = 0
	}

	correctVoters := make([]string, 0, len(room.Votes))
	impostorVotes := 0
	for _, player := range room.Players {
		accusedID, voted := room.Votes[player.ID]
		if !voted {
			continue
		}
		if accusedID == impostor.ID {
			correctVoters = append(correctVoters, player.ID)
			scores[player.ID] = correctVotePoints
			impostorVotes++
		}
	}
	if impostorVotes < len(room.Players)/2 {
		scores[impostor.ID] = deceptionPoints
	}

	return RoundResult{
		ImpostorID:    impostor.ID,
		CorrectVoters: correctVoters,
		Scores:        scores,
	}, nil
}

// FinalScores returns the standings sorted by score descending; ties keep
// the players' join order.
func FinalScores(room *Room) []PlayerScore {
	standings := make([]PlayerScore, 0, len(room.Players))
	for _, player := range room.Players {
		standings = append(standings, PlayerScore{
			PlayerID: player.ID,
			Name:     player.Name,
			Score:    player.Score,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	return standings
}
