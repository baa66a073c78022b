package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teaminsight/frontend/insight"
	"teaminsight/infrastructure/cache"
	"teaminsight/infrastructure/config"
	httpserver "teaminsight/infrastructure/http"
	"teaminsight/infrastructure/i18n"
	"teaminsight/infrastructure/insightclient"
	"teaminsight/infrastructure/sqlite"
)

const viewSweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var db *sqlite.DB
	if cfg.SQLitePath != "" {
		db, err = sqlite.OpenDB(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()

		if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}

	var client insight.Client
	if cfg.UsesRemoteAPI() {
		client, err = insightclient.New(cfg.InsightAPIURL, cfg.InsightAPITimeout)
		if err != nil {
			log.Fatalf("insight client: %v", err)
		}
		slog.Info("dashboard reads from remote insight api", slog.String("url", cfg.InsightAPIURL))
	} else {
		client = insight.NewStore(db)
	}

	locale, ok := i18n.ParseTag(cfg.DefaultLocale)
	if !ok {
		slog.Warn("unsupported default locale, using english", slog.String("locale", cfg.DefaultLocale))
		locale = i18n.English
	}

	views := cache.NewViewCache[*insight.Controller](cfg.ViewStateTTL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweepViews(ctx, views)

	server := httpserver.NewServer(cfg.Addr, db, client, views, locale)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("teaminsight listening on %s", cfg.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func sweepViews(ctx context.Context, views *cache.ViewCache[*insight.Controller]) {
	ticker := time.NewTicker(viewSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := views.Sweep(); removed > 0 {
				slog.Debug("evicted idle dashboard views", slog.Int("count", removed))
			}
		}
	}
}
