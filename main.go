// channelscout — contact finder for Spanish-language YouTube channels.
//
// Enumerates channels over the Data API v3 per query, extracts emails and
// social links from descriptions and scraped channel pages, and writes the
// records to CSV. Post-processing lives in cmd/dropcolumn and
// cmd/filteremails.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"

	"github.com/channelscout/channelscout/internal/engine"
	"github.com/channelscout/channelscout/internal/engine/sink"
	"github.com/channelscout/channelscout/internal/engine/store"
	"github.com/channelscout/channelscout/internal/finder"
)

// defaultQueries covers the Spanish-language niches the collector targets
// when QUERIES is not set.
var defaultQueries = []string{
	"español vlog",
	"canal español comedia",
	"español gaming",
	"cocina española",
	"español música",
	"español tutorial",
	"español tecnología",
	"español viajes",
	"español fitness",
	"español belleza",
}

func main() {
	apiKey := env.Str("YOUTUBE_API_KEY", "")
	if apiKey == "" {
		slog.Error("YOUTUBE_API_KEY is required; create one at https://console.cloud.google.com/apis/credentials")
		os.Exit(1)
	}

	output := "spanish_youtube_channels.csv"
	if len(os.Args) > 1 {
		output = os.Args[1]
	}

	queries := env.List("QUERIES", "")
	if len(queries) == 0 {
		queries = defaultQueries
	}

	initEngine(apiKey)

	var db *store.DB
	if path := engine.Cfg.StorePath; path != "" {
		var err error
		if db, err = store.Open(path); err != nil {
			slog.Warn("seen-channel store unavailable, dedup disabled", slog.Any("error", err))
			db = nil
		} else {
			defer db.Close()
		}
	}

	slog.Info("starting channel search",
		slog.Int("queries", len(queries)),
		slog.Int("email_target", engine.Cfg.EmailTarget),
		slog.String("output", output))

	res, runErr := finder.Run(context.Background(), finder.Options{
		Queries: queries,
		Store:   db,
	})

	if err := sink.WriteFile(output, res.Records); err != nil {
		slog.Error("saving results failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("run complete",
		slog.Int("channels", len(res.Records)),
		slog.Int("emails", res.EmailsFound),
		slog.Int("fallback_candidates", res.FallbackCandidates),
		slog.String("output", output))
	slog.Info("request counters\n" + engine.FormatMetrics())

	if runErr != nil {
		// Quota abort: results above are partial, operator must remediate.
		os.Exit(1)
	}
}

func initEngine(apiKey string) {
	c := engine.Config{
		YouTubeAPIKey:     apiKey,
		RelevanceLanguage: env.Str("RELEVANCE_LANGUAGE", "es"),
		MaxSearchResults:  env.Int("MAX_SEARCH_RESULTS", 50),
		EmailTarget:       env.Int("EMAIL_TARGET", 100),
		FetchTimeout:      env.Duration("FETCH_TIMEOUT", 10*time.Second),
		MaxContentChars:   env.Int("MAX_CONTENT_CHARS", 6000),
		PageDelay:         env.Duration("PAGE_DELAY", time.Second),
		QueryDelay:        env.Duration("QUERY_DELAY", time.Second),
		FallbackDelay:     env.Duration("FALLBACK_DELAY", 2*time.Second),
		StorePath:         env.Str("STORE_PATH", filepath.Join(os.Getenv("HOME"), ".channelscout", "channels.db")),
		DirectDDG:         env.Str("DIRECT_DDG", "1") == "1",
		SocialBlade:       env.Str("SOCIALBLADE", "0") == "1",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	bc, err := engine.NewBrowserClient()
	if err != nil {
		slog.Warn("browser client init failed, fallback backends disabled", slog.Any("error", err))
		c.DirectDDG = false
		c.SocialBlade = false
	} else {
		c.BrowserClient = bc
	}

	engine.Init(c)
}
