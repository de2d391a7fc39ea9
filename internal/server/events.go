package server

type EventPayload struct {
	RoomCode   string         `json:"room_code,omitempty"`
	PlayerName string         `json:"player,omitempty"`
	PlayerID   string         `json:"player_id,omitempty"`
	Round      int            `json:"round,omitempty"`
	Phase      string         `json:"phase,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Word       string         `json:"word,omitempty"`
	ImpostorID string         `json:"impostor_id,omitempty"`
	Scores     map[string]int `json:"scores,omitempty"`
}
