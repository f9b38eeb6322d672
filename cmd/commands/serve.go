package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/caseflow/internal/server"
)

// NewServeCommand returns the serve subcommand: a local task service for
// development.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local task service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the sqlite database",
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "YAML fixture file loaded when the database is empty",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.IsSet("host") {
		cfg.Serve.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Serve.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("db") {
		cfg.Serve.DBPath = cmd.String("db")
	}
	if cmd.IsSet("seed") {
		cfg.Serve.Seed = cmd.String("seed")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Serve.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	repo, err := server.OpenRepo(cfg.Serve.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	if cfg.Serve.Seed != "" {
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			n, err := server.SeedFromFile(ctx, repo, cfg.Serve.Seed)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			slog.Info("seeded task service", "tasks", n, "file", cfg.Serve.Seed)
		}
	}

	srv := server.NewServer(repo, cfg.Serve.Host, cfg.Serve.Port)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
