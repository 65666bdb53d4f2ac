// Package bridge exposes the stage machine over WebSocket so that an
// external renderer (a browser, a game engine) can drive a round and play
// back its events. Each connection owns one machine.
package bridge

import (
	"errors"

	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
)

// Operations a client can send.
const (
	OpClick   = "click"
	OpClicks  = "clicks"
	OpReset   = "reset"
	OpEndgame = "endgame"
	OpState   = "state"
)

var (
	ErrUnknownOp    = errors.New("bridge: unknown op")
	ErrMissingIndex = errors.New("bridge: missing index")
)

// Request is one client message.
type Request struct {
	Op      string `json:"op"`
	Index   *int   `json:"index,omitempty"`
	Indices []int  `json:"indices,omitempty"`
}

// WireEvent is the JSON form of a sweeper.Event. Only the fields that
// belong to the event type are set.
type WireEvent struct {
	Type     string            `json:"type"`
	Index    *int              `json:"index,omitempty"`
	Kind     string            `json:"kind,omitempty"`
	Position *sweeper.Position `json:"position,omitempty"`
	From     *sweeper.Stage    `json:"from,omitempty"`
	To       *sweeper.Stage    `json:"to,omitempty"`
}

// EventsResponse answers click, clicks, reset and endgame.
type EventsResponse struct {
	Events []WireEvent   `json:"events"`
	Stage  sweeper.Stage `json:"stage"`
}

// ErrorResponse answers a request that could not be processed.
// The connection stays open.
type ErrorResponse struct {
	Error string        `json:"error"`
	Stage sweeper.Stage `json:"stage"`
}

// EncodeEvent converts an event into its wire form.
func EncodeEvent(ev sweeper.Event) WireEvent {
	w := WireEvent{Type: ev.Name()}
	switch e := ev.(type) {
	case sweeper.TileCleared:
		w.Index = &e.Index
		w.Kind = e.Kind.String()
	case sweeper.BombTriggered:
		w.Index = &e.Index
		w.Position = &e.Position
	case sweeper.StageChanged:
		w.From = &e.From
		w.To = &e.To
	}
	return w
}

// EncodeEvents converts a batch of events, never returning nil so the
// field is always an array on the wire.
func EncodeEvents(events []sweeper.Event) []WireEvent {
	out := make([]WireEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, EncodeEvent(ev))
	}
	return out
}
