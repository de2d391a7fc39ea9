package server

import "testing"

func TestAddPlayerCapacity(t *testing.T) {
	room := testRoom(3)
	if _, err := room.addPlayer("Dana", 3); err != ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
	if len(room.Players) != 3 {
		t.Fatalf("expected membership unchanged, got %d", len(room.Players))
	}
}

func TestAddPlayerAfterStart(t *testing.T) {
	room := testRoom(3)
	if err := room.start(3, "cat"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := room.addPlayer("Dana", 10); err != ErrGameInProgress {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}
}

func TestStartRequiresMinimum(t *testing.T) {
	room := testRoom(2)
	if err := room.start(3, "cat"); err != ErrNotEnoughPlayers {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
	if room.Phase != phaseLobby {
		t.Fatalf("expected lobby phase, got %q", room.Phase)
	}
}

func TestStartAssignsOneImpostor(t *testing.T) {
	room := testRoom(4)
	if err := room.start(3, "cat"); err != nil {
		t.Fatalf("start: %v", err)
	}
	impostors := 0
	for _, player := range room.Players {
		if player.IsImpostor {
			impostors++
		}
	}
	if impostors != 1 {
		t.Fatalf("expected exactly one impostor, got %d", impostors)
	}
	if room.CurrentRound != 1 || room.Phase != phasePlaying {
		t.Fatalf("expected round 1 playing, got round %d phase %q", room.CurrentRound, room.Phase)
	}
	if room.CurrentTurnID != room.Players[0].ID {
		t.Fatalf("expected first player's turn, got %q", room.CurrentTurnID)
	}
}

func TestTurnCycleReachesVoting(t *testing.T) {
	room := testRoom(4)
	if err := room.start(3, "cat"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 4; i++ {
		want := room.Players[i].ID
		if room.CurrentTurnID != want {
			t.Fatalf("turn %d: expected %q, got %q", i, want, room.CurrentTurnID)
		}
		if err := room.submitWord(want, "word", timeNowUTC()); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if room.Phase != phaseVoting {
		t.Fatalf("expected voting phase, got %q", room.Phase)
	}
	if room.CurrentTurnID != "" {
		t.Fatalf("expected no turn holder in voting, got %q", room.CurrentTurnID)
	}
	if len(room.Submissions) != 4 {
		t.Fatalf("expected 4 submissions, got %d", len(room.Submissions))
	}
}

func TestSubmitWordOutOfTurn(t *testing.T) {
	room := testRoom(3)
	if err := room.start(3, "cat"); err != nil {
		t.Fatalf("start: %v", err)
	}
	err := room.submitWord(room.Players[1].ID, "word", timeNowUTC())
	if err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if len(room.Submissions) != 0 {
		t.Fatalf("expected no submission recorded, got %d", len(room.Submissions))
	}
	if room.CurrentTurnID != room.Players[0].ID {
		t.Fatalf("expected turn unchanged, got %q", room.CurrentTurnID)
	}
}

func TestSubmitWordWrongPhase(t *testing.T) {
	room := testRoom(3)
	err := room.submitWord(room.Players[0].ID, "word", timeNowUTC())
	if err != ErrWrongPhase {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func votingRoom(t *testing.T, n int) *Room {
	t.Helper()
	room := testRoom(n)
	if err := room.start(3, "cat"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < n; i++ {
		if err := room.submitWord(room.Players[i].ID, "word", timeNowUTC()); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	return room
}

func TestSubmitVoteRejectsSelf(t *testing.T) {
	room := votingRoom(t, 3)
	err := room.submitVote(room.Players[0].ID, room.Players[0].ID)
	if err != ErrSelfVote {
		t.Fatalf("expected ErrSelfVote, got %v", err)
	}
	if len(room.Votes) != 0 {
		t.Fatalf("expected no votes, got %d", len(room.Votes))
	}
}

func TestSubmitVoteUnknownAccused(t *testing.T) {
	room := votingRoom(t, 3)
	err := room.submitVote(room.Players[0].ID, "nobody")
	if err != ErrPlayerNotFound {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestSubmitVoteLastVoteWins(t *testing.T) {
	room := votingRoom(t, 3)
	voter := room.Players[0].ID
	if err := room.submitVote(voter, room.Players[1].ID); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if err := room.submitVote(voter, room.Players[2].ID); err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if len(room.Votes) != 1 {
		t.Fatalf("expected one vote entry, got %d", len(room.Votes))
	}
	if room.Votes[voter] != room.Players[2].ID {
		t.Fatalf("expected latest vote to win, got %q", room.Votes[voter])
	}
}

func TestAllVotedClosesRound(t *testing.T) {
	room := votingRoom(t, 3)
	impostorID := room.impostor().ID
	for _, player := range room.Players {
		accused := impostorID
		if player.ID == impostorID {
			accused = room.Players[0].ID
			if accused == impostorID {
				accused = room.Players[1].ID
			}
		}
		if err := room.submitVote(player.ID, accused); err != nil {
			t.Fatalf("vote by %s: %v", player.ID, err)
		}
	}
	if !room.allVoted() {
		t.Fatal("expected all voted")
	}
	result, err := room.enterResults()
	if err != nil {
		t.Fatalf("enterResults: %v", err)
	}
	if room.Phase != phaseResults {
		t.Fatalf("expected results phase, got %q", room.Phase)
	}
	if result.ImpostorID != impostorID {
		t.Fatalf("expected impostor %q, got %q", impostorID, result.ImpostorID)
	}
	for _, player := range room.Players {
		if player.IsImpostor {
			t.Fatal("expected impostor flag cleared after results")
		}
	}
}

func TestScoresAppliedOnce(t *testing.T) {
	room := votingRoom(t, 4)
	impostorID := room.impostor().ID
	for _, player := range room.Players {
		if player.ID == impostorID {
			continue
		}
		if err := room.submitVote(player.ID, impostorID); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	result, err := room.enterResults()
	if err != nil {
		t.Fatalf("enterResults: %v", err)
	}
	for _, player := range room.Players {
		if player.Score != result.Scores[player.ID] {
			t.Fatalf("player %s: expected score %d, got %d", player.ID, result.Scores[player.ID], player.Score)
		}
	}
}

func TestNextRoundAdvances(t *testing.T) {
	room := votingRoom(t, 3)
	if _, err := room.enterResults(); err != nil {
		t.Fatalf("enterResults: %v", err)
	}
	if err := room.nextRound("dog"); err != nil {
		t.Fatalf("nextRound: %v", err)
	}
	if room.CurrentRound != 2 || room.Phase != phasePlaying {
		t.Fatalf("expected round 2 playing, got round %d phase %q", room.CurrentRound, room.Phase)
	}
	if len(room.Submissions) != 0 || len(room.Votes) != 0 {
		t.Fatal("expected submissions and votes cleared")
	}
	if room.CurrentWord != "dog" {
		t.Fatalf("expected new word, got %q", room.CurrentWord)
	}
}

func TestNextRoundWrongPhase(t *testing.T) {
	room := testRoom(3)
	if err := room.nextRound("dog"); err != ErrWrongPhase {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func TestNextRoundFinishesAtMaxRounds(t *testing.T) {
	room := votingRoom(t, 3)
	room.MaxRounds = 1
	if _, err := room.enterResults(); err != nil {
		t.Fatalf("enterResults: %v", err)
	}
	if err := room.nextRound("dog"); err != nil {
		t.Fatalf("nextRound: %v", err)
	}
	if room.Phase != phaseFinished {
		t.Fatalf("expected finished phase, got %q", room.Phase)
	}
}

func TestRemoveLastPlayerEmptiesRoom(t *testing.T) {
	room := testRoom(1)
	out, err := room.removePlayer(room.Players[0].ID)
	if err != nil {
		t.Fatalf("removePlayer: %v", err)
	}
	if !out.empty {
		t.Fatal("expected empty outcome")
	}
}

func TestRemoveHostReassigns(t *testing.T) {
	room := testRoom(3)
	hostID := room.Players[0].ID
	out, err := room.removePlayer(hostID)
	if err != nil {
		t.Fatalf("removePlayer: %v", err)
	}
	if out.newHostID != room.Players[0].ID {
		t.Fatalf("expected host handoff to %q, got %q", room.Players[0].ID, out.newHostID)
	}
	if !room.Players[0].IsHost {
		t.Fatal("expected first remaining player to be host")
	}
}

func TestRemoveTurnHolderSkipsTurn(t *testing.T) {
	room := testRoom(4)
	if err := room.start(3, "cat"); err != nil {
		t.Fatalf("start: %v", err)
	}
	holder := room.Players[0].ID
	next := room.Players[1].ID
	out, err := room.removePlayer(holder)
	if err != nil {
		t.Fatalf("removePlayer: %v", err)
	}
	if !out.turnChanged {
		t.Fatal("expected turn change")
	}
	if room.CurrentTurnID != next {
		t.Fatalf("expected turn on %q, got %q", next, room.CurrentTurnID)
	}
	if len(room.Submissions) != 0 {
		t.Fatal("expected no submission recorded for the departed holder")
	}
}

func TestRemoveNonHolderCompletesSubmissions(t *testing.T) {
	room := testRoom(4)
	if err := room.start(3, "cat"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := room.submitWord(room.Players[i].ID, "word", timeNowUTC()); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	// Three submissions, four players; removing the last pending player
	// satisfies the all-submitted check.
	out, err := room.removePlayer(room.Players[3].ID)
	if err != nil {
		t.Fatalf("removePlayer: %v", err)
	}
	if !out.enteredVoting {
		t.Fatal("expected room to enter voting")
	}
	if room.Phase != phaseVoting {
		t.Fatalf("expected voting phase, got %q", room.Phase)
	}
}

func TestRemoveVoterDropsVoteAndCompletes(t *testing.T) {
	room := votingRoom(t, 4)
	impostorID := room.impostor().ID
	var pending string
	for _, player := range room.Players {
		accused := impostorID
		if player.ID == impostorID {
			pending = player.ID
			continue
		}
		if err := room.submitVote(player.ID, accused); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	// The impostor never voted; their departure drops the count needed and
	// closes the round.
	out, err := room.removePlayer(pending)
	if err != nil {
		t.Fatalf("removePlayer: %v", err)
	}
	if out.result == nil {
		t.Fatalf("expected round result, got %#v", out)
	}
	if room.Phase != phaseResults {
		t.Fatalf("expected results phase, got %q", room.Phase)
	}
}

func TestRemoveImpostorReassignsMidRound(t *testing.T) {
	room := testRoom(4)
	if err := room.start(3, "cat"); err != nil {
		t.Fatalf("start: %v", err)
	}
	impostorID := room.impostor().ID
	if _, err := room.removePlayer(impostorID); err != nil {
		t.Fatalf("removePlayer: %v", err)
	}
	if room.impostor() == nil {
		t.Fatal("expected a replacement impostor mid-round")
	}
}

func TestRemoveUnknownPlayer(t *testing.T) {
	room := testRoom(3)
	if _, err := room.removePlayer("nobody"); err != ErrPlayerNotFound {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}
