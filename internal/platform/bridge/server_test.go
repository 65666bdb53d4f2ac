package bridge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
	"github.com/vovakirdan/tui-sweeper/internal/minefield"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// wireResponse decodes either response shape.
type wireResponse struct {
	Events []WireEvent   `json:"events"`
	Stage  sweeper.Stage `json:"stage"`
	Error  string        `json:"error"`
	Cells  []string      `json:"cells"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Bombs  int           `json:"bombs"`
}

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	srv := New(Config{Sweeper: config.DefaultSweeperConfig(), Store: store})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/ws?" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req string) wireResponse {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(req)); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp wireResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp
}

func TestClickStartsRound(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "difficulty=easy&seed=1")

	state := roundTrip(t, conn, `{"op":"state"}`)
	if state.Stage != sweeper.StageNewGame || state.Width != 9 || state.Height != 9 {
		t.Fatalf("state = %+v, expected a fresh 9x9 board", state)
	}
	for i, c := range state.Cells {
		if c != sweeper.HiddenCell {
			t.Fatalf("cells[%d] = %q before the first click, expected hidden", i, c)
		}
	}

	resp := roundTrip(t, conn, `{"op":"click","index":40}`)
	if resp.Error != "" {
		t.Fatalf("click error: %s", resp.Error)
	}
	if len(resp.Events) == 0 || resp.Events[0].Type != "stage_changed" {
		t.Fatalf("events = %+v, expected stage_changed first", resp.Events)
	}
	if *resp.Events[0].From != sweeper.StageNewGame || *resp.Events[0].To != sweeper.StageMapSet {
		t.Errorf("first event = %+v, expected new_game -> map_set", resp.Events[0])
	}

	cleared := 0
	for _, ev := range resp.Events {
		if ev.Type != "tile_cleared" {
			continue
		}
		cleared++
		if ev.Index == nil || ev.Kind == "" {
			t.Errorf("tile_cleared without index or kind: %+v", ev)
		}
	}
	if cleared == 0 {
		t.Error("first click should clear at least one tile")
	}

	state = roundTrip(t, conn, `{"op":"state"}`)
	if state.Bombs != 10 {
		t.Errorf("bombs = %d, expected 10", state.Bombs)
	}
	if state.Cells[40] == sweeper.HiddenCell {
		t.Error("clicked tile still hidden in state")
	}
}

func TestEndgameAndReset(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "difficulty=easy&seed=2")

	roundTrip(t, conn, `{"op":"click","index":0}`)
	resp := roundTrip(t, conn, `{"op":"endgame"}`)
	if resp.Stage != sweeper.StageKillScreen {
		if resp.Stage == sweeper.StageWinScreen {
			t.Skip("first click cleared the whole field")
		}
		t.Fatalf("stage = %v after endgame, expected kill_screen", resp.Stage)
	}
	if last := resp.Events[len(resp.Events)-1]; last.Type != "game_over" {
		t.Errorf("last event = %q, expected game_over", last.Type)
	}

	// Mines are unmasked once the round is over
	state := roundTrip(t, conn, `{"op":"state"}`)
	mines := 0
	for _, c := range state.Cells {
		if c == minefield.Boom.String() {
			mines++
		}
	}
	if mines != 10 {
		t.Errorf("visible mines = %d after endgame, expected 10", mines)
	}

	resp = roundTrip(t, conn, `{"op":"reset"}`)
	if resp.Stage != sweeper.StageNewGame || len(resp.Events) != 1 {
		t.Errorf("reset = %+v, expected one stage_changed to new_game", resp)
	}
}

func TestDetonationPosition(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "difficulty=easy&seed=3")

	roundTrip(t, conn, `{"op":"click","index":40}`)
	state := roundTrip(t, conn, `{"op":"state"}`)
	if state.Stage != sweeper.StageMapSet {
		t.Skip("first click ended the round")
	}

	// Find a mine by clicking hidden tiles until one goes off
	for i, c := range state.Cells {
		if c != sweeper.HiddenCell {
			continue
		}
		resp := roundTrip(t, conn, `{"op":"clicks","indices":[`+itoa(i)+`]}`)
		if resp.Stage == sweeper.StageMapSet {
			continue
		}
		if resp.Stage == sweeper.StageWinScreen {
			t.Skip("cleared the board without hitting a mine")
		}
		ev := resp.Events[0]
		if ev.Type != "bomb_triggered" || ev.Position == nil || *ev.Index != i {
			t.Fatalf("first event = %+v, expected bomb_triggered at %d", ev, i)
		}
		// 9x9 board, 35 units between tiles
		wantX := float64(i/9)*35 - 9*35/2.0
		wantY := float64(i%9)*35 - 9*35/2.0
		if ev.Position.X != wantX || ev.Position.Y != wantY {
			t.Errorf("position = %+v, expected (%v, %v)", *ev.Position, wantX, wantY)
		}
		return
	}
	t.Fatal("no mine found")
}

func TestProtocolErrors(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	tests := []struct {
		req  string
		want string
	}{
		{`not json`, "invalid request"},
		{`{"op":"fly"}`, "unknown op"},
		{`{"op":"click"}`, "missing index"},
	}
	for _, tc := range tests {
		resp := roundTrip(t, conn, tc.req)
		if !strings.Contains(resp.Error, tc.want) {
			t.Errorf("%s: error = %q, expected it to contain %q", tc.req, resp.Error, tc.want)
		}
		if resp.Stage != sweeper.StageNewGame {
			t.Errorf("%s: stage = %v, expected new_game", tc.req, resp.Stage)
		}
	}

	// Out of range clicks are ignored, not errors
	resp := roundTrip(t, conn, `{"op":"click","index":100000}`)
	if resp.Error != "" || len(resp.Events) != 0 {
		t.Errorf("out of range click = %+v, expected no events", resp)
	}
}

func TestRejectsBadQuery(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, q := range []string{"difficulty=nightmare", "seed=abc"} {
		resp, err := http.Get(ts.URL + "/v1/ws?" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET /v1/ws?%s = %d, expected 400", q, resp.StatusCode)
		}
	}
}

func TestBoardEndpointAndCORS(t *testing.T) {
	ts := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/board?difficulty=normal", nil)
	req.Header.Set("Origin", "http://renderer.local")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://renderer.local" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	var board struct {
		Rows    int     `json:"rows"`
		Columns int     `json:"columns"`
		Mines   int     `json:"mines"`
		Offset  float64 `json:"block_offset"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		t.Fatal(err)
	}
	if board.Rows != 16 || board.Columns != 16 || board.Mines != 40 || board.Offset != 35 {
		t.Errorf("board = %+v, expected 16x16/40 with offset 35", board)
	}
}

func TestRecordsFinishedRounds(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ts := newTestServer(t, store)
	conn := dial(t, ts, "difficulty=easy&seed=4")

	roundTrip(t, conn, `{"op":"click","index":40}`)
	roundTrip(t, conn, `{"op":"endgame"}`)

	rounds, err := store.RecentRounds(GameID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 1 {
		t.Fatalf("saved %d rounds, expected 1", len(rounds))
	}
	if rounds[0].Variant != "easy" || rounds[0].Cells != 81 || rounds[0].Mines != 10 {
		t.Errorf("round = %+v", rounds[0])
	}
}

func TestEncodeEvent(t *testing.T) {
	ev := EncodeEvent(sweeper.TileCleared{Index: 3, Kind: minefield.Defused(2)})
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"tile_cleared","index":3,"kind":"defused(2)"}`
	if string(data) != want {
		t.Errorf("json = %s, expected %s", data, want)
	}

	data, _ = json.Marshal(EncodeEvent(sweeper.GameWon{}))
	if string(data) != `{"type":"game_won"}` {
		t.Errorf("json = %s", data)
	}

	data, _ = json.Marshal(EncodeEvent(sweeper.StageChanged{From: sweeper.StageMapSet, To: sweeper.StageWinScreen}))
	if string(data) != `{"type":"stage_changed","from":"map_set","to":"win_screen"}` {
		t.Errorf("json = %s", data)
	}
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}
