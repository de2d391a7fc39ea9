package server

import (
	"net/http"
	"strings"
	"testing"
)

func TestHomePage(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "ok" {
		t.Fatalf("unexpected health body %#v", body)
	}
}

func TestCreateRoomEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	code, hostID := createRoom(t, ts, "Ada")
	if !validRoomCode(code) {
		t.Fatalf("expected a valid room code, got %q", code)
	}
	if hostID == "" {
		t.Fatal("expected a host player id")
	}
}

func TestCreateRoomRejectsBlankName(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]string{
		"name": "   ",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestCreateRoomRejectsUnknownCategory(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]string{
		"name":     "Ada",
		"category": "astrophysics",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestRoomStatusEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	code, _ := createRoom(t, ts, "Ada")
	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+code, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["room_code"] != code || body["phase"] != phaseLobby {
		t.Fatalf("unexpected status body %#v", body)
	}
	if body["player_count"].(float64) != 1 {
		t.Fatalf("expected one player, got %v", body["player_count"])
	}
}

func TestRoomStatusUnknownCode(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/ZZZZZZ", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestJoinRoomEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	code, _ := createRoom(t, ts, "Ada")
	// Codes are case-insensitive on the way in.
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+strings.ToLower(code)+"/join", map[string]string{
		"name": "Bob",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["player_id"] == "" {
		t.Fatal("expected a player id")
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/ZZZZZZ/join", map[string]string{
		"name": "Bob",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["code"] != "RoomNotFound" {
		t.Fatalf("expected RoomNotFound code, got %#v", body)
	}
}

func TestJoinFullRoom(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.cfg.MaxPlayers = 2

	code, _ := createRoom(t, ts, "Ada")
	joinPlayer(t, ts, code, "Bob")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{
		"name": "Cleo",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["code"] != "RoomFull" {
		t.Fatalf("expected RoomFull code, got %#v", body)
	}
}

func TestStartBelowMinimum(t *testing.T) {
	_, ts := newTestServer(t)

	code, hostID := createRoom(t, ts, "Ada")
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/start", map[string]string{
		"player_id": hostID,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["code"] != "NotEnoughPlayers" {
		t.Fatalf("expected NotEnoughPlayers code, got %#v", body)
	}
}

func TestStartRequiresHost(t *testing.T) {
	_, ts := newTestServer(t)

	code, _ := createRoom(t, ts, "Ada")
	bobID := joinPlayer(t, ts, code, "Bob")
	joinPlayer(t, ts, code, "Cleo")

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/start", map[string]string{
		"player_id": bobID,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/categories", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	categories, ok := body["categories"].([]any)
	if !ok || len(categories) == 0 {
		t.Fatalf("expected a non-empty category list, got %#v", body)
	}
}

func TestLeaveLastPlayerDestroysRoom(t *testing.T) {
	_, ts := newTestServer(t)

	code, hostID := createRoom(t, ts, "Ada")
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/leave", map[string]string{
		"player_id": hostID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/"+code, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected room to be gone, got status %d", resp.StatusCode)
	}
}

func TestUnknownAction(t *testing.T) {
	_, ts := newTestServer(t)

	code, _ := createRoom(t, ts, "Ada")
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/dance", map[string]string{})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
