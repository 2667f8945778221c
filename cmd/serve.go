package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dohyun/jumble/internal/attempts"
	"github.com/dohyun/jumble/internal/config"
	"github.com/dohyun/jumble/internal/feedback"
	"github.com/dohyun/jumble/internal/llm"
	"github.com/dohyun/jumble/internal/logger"
	"github.com/dohyun/jumble/internal/quiz"
	"github.com/dohyun/jumble/internal/ranking"
	"github.com/dohyun/jumble/internal/sentencegen"
	"github.com/dohyun/jumble/internal/server"
	"github.com/dohyun/jumble/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// runServe loads configuration, wires the services, and serves until
// SIGINT/SIGTERM.
func runServe(cmd *cobra.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	driver, dsn, err := resolveDSN(cmd, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := server.Options{
		Config:   cfg,
		Logger:   log,
		Cache:    store.NewSentenceCacheRepo(st.DB()),
		Attempts: attempts.NewService(store.NewAttemptRepo(st.DB()), cfg.MaxDailyAttempts, log),
		Ranking:  ranking.NewService(store.NewProgressRepo(st.DB()), log),
		Sessions: quiz.NewManager(cfg.SessionTTL),
	}

	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		log.Warn("LLM provider not configured, serving from sentence cache only", "error", err)
	} else {
		provider, perr := llm.NewProvider(cmd.Context(), llmCfg, store.NewCallSink(st.DB()))
		if perr != nil {
			log.Warn("LLM provider init failed, serving from sentence cache only", "error", perr)
		} else {
			genCfg := sentencegen.DefaultConfig()
			genCfg.SentenceCount = cfg.SentenceCount
			opts.Generator = sentencegen.New(provider, genCfg)
			opts.Feedback = feedback.NewService(provider)
		}
	}

	srv := server.New(opts)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
