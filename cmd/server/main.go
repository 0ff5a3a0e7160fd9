package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/silverbars/orderboard/params"
	"github.com/silverbars/orderboard/pkg/api"
	"github.com/silverbars/orderboard/pkg/board"
	"github.com/silverbars/orderboard/pkg/util"
)

func main() {
	// Load config from .env file and environment variables
	cfg := params.LoadFromEnv("") // "" means load from .env in current directory

	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogFile != "" {
		logger, err = util.NewLoggerWithFile(cfg.LogFile)
	} else {
		logger, err = util.NewLogger()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("order_board_starting",
		"addr", cfg.HTTP.Addr,
		"default_actor", cfg.Board.DefaultActor,
		"log_file", cfg.LogFile)

	// The ledger is the whole application state: in-memory, process lifetime.
	ledger := board.NewLedger(util.RealClock{})

	server := api.NewServer(ledger, cfg, sugar)
	go func() {
		if err := server.Start(cfg.HTTP.Addr); err != nil {
			sugar.Fatalw("api_server_failed", "err", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	sugar.Infow("order_board_stopping")
}
