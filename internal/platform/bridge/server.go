package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// GameID is the id rounds are stored under.
const GameID = "sweeper"

// Config configures a bridge server.
type Config struct {
	Sweeper  config.SweeperConfig
	Store    *storage.Store // Optional; finished rounds are recorded when set
	Logger   *log.Logger
	TickRate int // Converts play time to ticks for stored rounds
}

// Server serves the WebSocket bridge.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	now      func() time.Time
}

// New creates a bridge server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Origins are policed by the CORS layer
			},
		},
		now: time.Now,
	}
}

// Handler returns the HTTP handler with CORS applied.
//
//	GET /v1/ws?difficulty=easy&seed=42  upgrade to the round protocol
//	GET /v1/board?difficulty=easy       board settings as JSON
//	GET /healthz                        liveness
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/ws", s.handleConnect)
	mux.HandleFunc("GET /v1/board", s.handleBoard)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods:   []string{http.MethodHead, http.MethodGet},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(mux)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("bridge listening", "address", addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("bridge: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// sweeperFor applies the difficulty query parameter, if any.
func (s *Server) sweeperFor(r *http.Request) (config.SweeperConfig, error) {
	cfg := s.cfg.Sweeper
	name := r.URL.Query().Get("difficulty")
	if name == "" {
		return cfg, nil
	}
	preset, err := config.ParseDifficulty(name)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplySweeperPreset(&cfg, preset); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.sweeperFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(struct {
		Difficulty config.DifficultyPreset `json:"difficulty"`
		Rows       int                     `json:"rows"`
		Columns    int                     `json:"columns"`
		Mines      int                     `json:"mines"`
		BlockSize  float64                 `json:"block_size"`
		Offset     float64                 `json:"block_offset"`
		Win        config.WinRule          `json:"win"`
	}{
		Difficulty: cfg.Difficulty,
		Rows:       cfg.Board.Rows,
		Columns:    cfg.Board.Columns,
		Mines:      cfg.Board.Mines,
		BlockSize:  cfg.Layout.BlockSize,
		Offset:     cfg.Layout.BlockOffset,
		Win:        cfg.Rules.Win,
	})
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.sweeperFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seed := s.now().UnixNano()
	if v := r.URL.Query().Get("seed"); v != "" {
		if seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			http.Error(w, "seed must be an integer", http.StatusBadRequest)
			return
		}
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	machine, err := sweeper.NewMachine(sweeper.MachineConfigFrom(cfg), rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		logger.Error("unable to upgrade", "error", err)
		return
	}
	defer conn.Close()

	logger.Debug("connection established", "difficulty", cfg.Difficulty, "seed", seed)

	sess := &session{
		server:  s,
		conn:    conn,
		machine: machine,
		variant: variantName(cfg),
		logger:  logger,
		started: s.now(),
	}
	if err := sess.run(); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			logger.Warn("connection closed", "error", err)
		}
		return
	}
	logger.Debug("connection finished")
}

func variantName(cfg config.SweeperConfig) string {
	if cfg.Difficulty == "" {
		return "custom"
	}
	return string(cfg.Difficulty)
}

// session is the per-connection loop. It is driven by one goroutine.
type session struct {
	server  *Server
	conn    *websocket.Conn
	machine *sweeper.Machine
	variant string
	logger  *log.Logger
	started time.Time
}

func (s *session) run() error {
	for {
		mt, buf, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		var req Request
		if err := json.Unmarshal(buf, &req); err != nil {
			if err := s.writeError(fmt.Errorf("bridge: invalid request: %w", err)); err != nil {
				return err
			}
			continue
		}

		if err := s.conn.WriteJSON(s.handle(req)); err != nil {
			return fmt.Errorf("bridge: unable to write json: %w", err)
		}
	}
}

// handle executes one request and builds its response.
func (s *session) handle(req Request) any {
	var events []sweeper.Event

	switch req.Op {
	case OpState:
		return s.machine.View()
	case OpClick:
		if req.Index == nil {
			return s.errorResponse(ErrMissingIndex)
		}
		events = s.machine.Click(*req.Index)
	case OpClicks:
		events = s.machine.Tick(req.Indices)
	case OpReset:
		events = s.machine.Reset()
		s.started = s.server.now()
	case OpEndgame:
		events = s.machine.Endgame()
	default:
		return s.errorResponse(fmt.Errorf("%w %q", ErrUnknownOp, req.Op))
	}

	if s.machine.CurrentStage() == sweeper.StageMapSet && len(events) > 0 {
		if _, ok := events[0].(sweeper.StageChanged); ok {
			s.started = s.server.now()
		}
	}
	s.recordIfFinished(events)

	return EventsResponse{
		Events: EncodeEvents(events),
		Stage:  s.machine.CurrentStage(),
	}
}

// recordIfFinished stores the round when the events end it.
func (s *session) recordIfFinished(events []sweeper.Event) {
	store := s.server.cfg.Store
	if store == nil {
		return
	}

	finished, won := false, false
	for _, ev := range events {
		switch ev.(type) {
		case sweeper.GameWon:
			finished, won = true, true
		case sweeper.GameOver:
			finished = true
		}
	}
	if !finished {
		return
	}

	rows, cols := s.machine.Dimensions()
	elapsed := s.server.now().Sub(s.started)
	_, err := store.SaveRound(storage.Round{
		GameID:   GameID,
		Variant:  s.variant,
		Won:      won,
		Revealed: s.machine.Revealed(),
		Cells:    rows * cols,
		Mines:    s.machine.BombCount(),
		Ticks:    int64(elapsed * time.Duration(s.server.cfg.TickRate) / time.Second),
	})
	if err != nil {
		s.logger.Warn("could not save round", "error", err)
	}
}

func (s *session) errorResponse(err error) ErrorResponse {
	s.logger.Debug("rejected request", "error", err)
	return ErrorResponse{Error: err.Error(), Stage: s.machine.CurrentStage()}
}

func (s *session) writeError(err error) error {
	return s.conn.WriteJSON(s.errorResponse(err))
}
