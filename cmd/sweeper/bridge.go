package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/platform/bridge"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	flagBridgeAddr string
	flagNoRecord   bool
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Serve the round protocol over WebSocket",
	Long: `Start an HTTP server that lets an external renderer drive rounds.

Each WebSocket connection owns one board. Clients send JSON requests
and receive the events the request produced:

  {"op":"click","index":40}     clear a tile
  {"op":"clicks","indices":[]}  one frame worth of clicks
  {"op":"reset"}                start over on the same board size
  {"op":"endgame"}              detonate every mine
  {"op":"state"}                current board view

Endpoints:
  GET /v1/ws?difficulty=easy&seed=42
  GET /v1/board?difficulty=easy
  GET /healthz

Examples:
  sweeper bridge
  sweeper bridge --addr 127.0.0.1:9000 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runBridge,
}

func init() {
	bridgeCmd.Flags().StringVar(&flagBridgeAddr, "addr", ":8080", "HTTP listen address (host:port)")
	bridgeCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not store finished rounds")
}

func runBridge(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := bridge.Config{
		Sweeper:  sweeperCfg,
		Logger:   logger.WithPrefix("sweeper-bridge"),
		TickRate: flagFPS,
	}
	if !flagNoRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open scores database", "error", err)
		} else {
			defer store.Close()
			cfg.Store = store
		}
	}

	fmt.Printf("Sweeper bridge listening on %s\n", flagBridgeAddr)
	return bridge.New(cfg).Serve(ctx, flagBridgeAddr)
}
