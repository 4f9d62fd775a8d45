package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"musyoka.dev/internal/config"
	"musyoka.dev/internal/contact"
	"musyoka.dev/internal/content"
	"musyoka.dev/internal/db"
	"musyoka.dev/internal/handlers"
	"musyoka.dev/internal/logging"
	"musyoka.dev/internal/middleware"
	"musyoka.dev/internal/templates"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logging.LogPanics(nil)
		return serve(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cfg *config.Config) error {
	site, err := content.Load(cfg.ContentPath)
	if err != nil {
		return err
	}

	var ts *templates.Set
	if cfg.LiveTemplates != "" {
		logging.Info().Str("dir", cfg.LiveTemplates).Msg("Reading templates from disk on every request")
		ts, err = templates.NewLive(cfg.LiveTemplates)
	} else {
		ts, err = templates.New()
	}
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer database.Close()

	var notifier contact.Notifier
	if cfg.SMTP.Enabled() {
		notifier = contact.NewSMTPNotifier(cfg.SMTP)
	} else {
		logging.Info().Msg("SMTP not configured, contact messages are stored only")
	}

	var tracker *middleware.VisitorTracker
	if cfg.TrackVisitors {
		salt := cfg.VisitorSalt
		if salt == "" {
			salt = randomSalt()
			logging.Warn().Msg("No visitor_salt configured, unique visitor counts reset on restart")
		}
		tracker = middleware.NewVisitorTracker(database, salt)
	}

	server := &http.Server{
		Addr: cfg.ServerAddr,
		Handler: handlers.SetupRoutes(handlers.Dependencies{
			Config:    cfg,
			Site:      site,
			Templates: ts,
			DB:        database,
			Contact:   contact.NewService(database, notifier),
			Tracker:   tracker,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pruneDone := make(chan struct{})
	go func() {
		defer close(pruneDone)
		pruneVisits(ctx, database, cfg.VisitRetention)
	}()

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.ServerAddr).Int("projects", len(site.Projects)).Msg("Serving the portfolio")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		stop()
		<-pruneDone
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("Server shut down unexpectedly")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down the portfolio")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(timeoutCtx); err != nil {
		logging.Warn().Err(err).Msg("Server did not shut down gracefully")
	}
	if tracker != nil {
		tracker.Wait()
	}
	<-pruneDone

	logging.Info().Msg("Goodbye")
	return nil
}

// pruneVisits deletes visits older than retentionDays once a day until ctx
// is done. A retention of zero keeps visits forever.
func pruneVisits(ctx context.Context, database *db.DB, retentionDays int) {
	if retentionDays == 0 {
		return
	}
	logger := logging.With().Str("job", "prune visits").Int("retention_days", retentionDays).Logger()

	prune := func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		n, err := database.DeleteVisitsBefore(ctx, cutoff)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to delete old visits")
			return
		}
		if n > 0 {
			logger.Info().Int64("deleted", n).Time("before", cutoff).Msg("Deleted old visits")
		}
	}

	prune()
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}

func randomSalt() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
