package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/creator-directory-backend/api"
	"github.com/rpupo63/creator-directory-backend/config"
	"github.com/rpupo63/creator-directory-backend/database"
	"github.com/rpupo63/creator-directory-backend/models"
	"github.com/rpupo63/creator-directory-backend/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogger(c)
	log.Info().Msg("Initializing app...")

	if err := run(c); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(config.GetString(c, "LOG_FORMAT", "json"), "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func run(c map[string]string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(c)
	if err != nil {
		return err
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		models.GenerateModels(db)
		return nil
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return nil
	}

	if config.GetBool(c, "AUTO_MIGRATE", true) {
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
	}

	if err := resolveSessionSecret(ctx, c); err != nil {
		return err
	}

	var uploadSigner api.UploadSigner
	if signer, err := services.NewS3UploadURLSigner(ctx, c); err != nil {
		log.Warn().Err(err).Msg("upload URL signing disabled")
	} else {
		uploadSigner = signer
	}

	currentDB := database.New(db)
	server, err := api.NewServer(c, currentDB, uploadSigner)
	if err != nil {
		return fmt.Errorf("error initializing server: %w", err)
	}

	sweepInterval := time.Duration(config.GetInt(c, "SESSION_SWEEP_INTERVAL_MINUTES", int(services.DefaultSweepInterval/time.Minute))) * time.Minute
	sweeper := services.NewSessionSweeper(currentDB.SessionRepo(), sweepInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, 30*time.Second)
	})
	g.Go(func() error {
		return sweeper.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msgf("Closing server: %v", context.Cause(gctx))
		return nil
	})

	return g.Wait()
}

// resolveSessionSecret falls back to SSM Parameter Store when SESSION_SECRET
// is not set directly.
func resolveSessionSecret(ctx context.Context, c map[string]string) error {
	if config.GetString(c, "SESSION_SECRET", "") != "" {
		return nil
	}
	if config.GetString(c, "SESSION_SECRET_SSM_PARAMETER", "") == "" {
		return fmt.Errorf("SESSION_SECRET or SESSION_SECRET_SSM_PARAMETER must be set")
	}

	getter, err := config.NewParameterGetter(ctx, c)
	if err != nil {
		return err
	}
	_, err = config.ResolveSecret(ctx, c, getter, "SESSION_SECRET", "SESSION_SECRET_SSM_PARAMETER")
	return err
}
