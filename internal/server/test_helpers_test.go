package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"white-game/internal/config"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return srv, ts
}

func createRoom(t *testing.T, ts *httptest.Server, hostName string) (string, string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]string{
		"name": hostName,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["room_code"].(string), body["player_id"].(string)
}

func joinPlayer(t *testing.T, ts *httptest.Server, code, name string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{
		"name": name,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["player_id"].(string)
}

func startGame(t *testing.T, ts *httptest.Server, code, hostID string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/start", map[string]string{
		"player_id": hostID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func currentTurn(t *testing.T, srv *Server, code string) string {
	t.Helper()
	var turnID string
	_, err := srv.store.UpdateRoom(code, func(room *Room) error {
		turnID = room.CurrentTurnID
		return nil
	})
	if err != nil {
		t.Fatalf("read room %s: %v", code, err)
	}
	return turnID
}

func roomPhase(t *testing.T, srv *Server, code string) string {
	t.Helper()
	var phase string
	_, err := srv.store.UpdateRoom(code, func(room *Room) error {
		phase = room.Phase
		return nil
	})
	if err != nil {
		t.Fatalf("read room %s: %v", code, err)
	}
	return phase
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

// testRoom builds a lobby room with n members, host first, bypassing the
// registry for state-machine tests.
func testRoom(n int) *Room {
	room := &Room{
		Code:      "ABCDEF",
		Phase:     phaseLobby,
		MaxRounds: 5,
		Votes:     make(map[string]string),
		CreatedAt: timeNowUTC(),
	}
	for i := 0; i < n; i++ {
		room.Players = append(room.Players, Player{
			ID:        fmt.Sprintf("p%d", i+1),
			Name:      fmt.Sprintf("Player %d", i+1),
			Connected: true,
			JoinedAt:  timeNowUTC(),
		})
	}
	if n > 0 {
		room.Players[0].IsHost = true
	}
	return room
}
