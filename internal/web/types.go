package web

type RoomSummary struct {
	Code         string `json:"room_code"`
	Phase        string `json:"phase"`
	Players      int    `json:"player_count"`
	CurrentRound int    `json:"current_round"`
	MaxRounds    int    `json:"max_rounds"`
}
