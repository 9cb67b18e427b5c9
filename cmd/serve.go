package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/friendle/assets"
	"github.com/robalobadob/friendle/internal/config"
	"github.com/robalobadob/friendle/internal/connections"
	"github.com/robalobadob/friendle/internal/db"
	"github.com/robalobadob/friendle/internal/httpserver"
	"github.com/robalobadob/friendle/internal/words"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API. Configuration comes from the environment (and a .env file
if present): PORT, DATABASE_DSN, FRIENDLE_SECRET, CLIENT_ORIGIN, STRICT_WORDS, ...

The server stops cleanly on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides $PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	if !cmd.Flags().Changed("log-level") {
		if err := setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}
	}

	if err := words.Init(cfg.AnswersFile, cfg.AllowedFile); err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	answers, allowed := words.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	raw, err := assets.ConnectionsCatalog()
	if err != nil {
		return err
	}
	catalog, err := connections.ParseCatalog(raw)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(cfg, conn, catalog)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", cfg.Addr()).Str("db", cfg.DatabaseDSN).Bool("strictWords", cfg.StrictWords).Msg("starting friendle server")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
