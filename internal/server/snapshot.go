package server

// snapshot builds the room-update payload broadcast to every member. The
// impostor flag and the secret word never appear here; they travel only on
// the private word-assigned messages. The vote map itself is revealed once
// the round reaches results.
func snapshot(room *Room) map[string]any {
	players := make([]map[string]any, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, map[string]any{
			"id":        player.ID,
			"name":      player.Name,
			"score":     player.Score,
			"is_host":   player.IsHost,
			"connected": player.Connected,
		})
	}
	submissions := make([]map[string]any, 0, len(room.Submissions))
	for _, submission := range room.Submissions {
		submissions = append(submissions, submissionPayload(submission))
	}
	payload := map[string]any{
		"type":            "room-update",
		"room_code":       room.Code,
		"phase":           room.Phase,
		"current_round":   room.CurrentRound,
		"max_rounds":      room.MaxRounds,
		"current_turn_id": room.CurrentTurnID,
		"time_left":       room.TimeLeft,
		"players":         players,
		"submissions":     submissions,
		"votes_count":     len(room.Votes),
	}
	if room.Phase == phaseResults || room.Phase == phaseFinished {
		votes := make(map[string]string, len(room.Votes))
		for voter, accused := range room.Votes {
			votes[voter] = accused
		}
		payload["votes"] = votes
	}
	return payload
}

func submissionPayload(submission WordSubmission) map[string]any {
	return map[string]any{
		"player_id":    submission.PlayerID,
		"word":         submission.Word,
		"submitted_at": submission.SubmittedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// wordAssignments captures the private payload for each member: the secret
// word, or the cover word for the impostor.
func wordAssignments(room *Room, coverWord string) []wordAssignment {
	assignments := make([]wordAssignment, 0, len(room.Players))
	for _, player := range room.Players {
		word := room.CurrentWord
		if player.IsImpostor {
			word = coverWord
		}
		assignments = append(assignments, wordAssignment{
			PlayerID: player.ID,
			Word:     word,
		})
	}
	return assignments
}

type wordAssignment struct {
	PlayerID string
	Word     string
}
