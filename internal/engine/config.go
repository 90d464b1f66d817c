package engine

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey     string
	YouTubeAPIBase    string // Data API v3 base URL, overridable for tests
	RelevanceLanguage string // relevanceLanguage param for channel search
	MaxSearchResults  int    // per search call, API caps at 50
	EmailTarget       int    // discovery budget threshold

	FetchTimeout    time.Duration
	MaxContentChars int

	// Courtesy delays between external calls. Zero disables the pause.
	PageDelay     time.Duration // between channel page fetches
	QueryDelay    time.Duration // between search queries
	FallbackDelay time.Duration // between fallback backend invocations

	StorePath string // seen-channel SQLite path, empty disables dedup

	HTTPClient    *http.Client
	BrowserClient *BrowserClient // nil = DDG fallback disabled
	DirectDDG     bool           // enable DuckDuckGo fallback backend
	SocialBlade   bool           // enable Social Blade fallback backend
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (contacts, youtube, sources).
// Always points to the current cfg value.
var Cfg = &cfg

var (
	pageLimiter     *rate.Limiter
	queryLimiter    *rate.Limiter
	fallbackLimiter *rate.Limiter
)

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.YouTubeAPIBase == "" {
		c.YouTubeAPIBase = "https://www.googleapis.com/youtube/v3"
	}
	if c.MaxSearchResults <= 0 || c.MaxSearchResults > 50 {
		c.MaxSearchResults = 50
	}
	if c.EmailTarget <= 0 {
		c.EmailTarget = 100
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	cfg = c
	Cfg = &cfg

	pageLimiter = newLimiter(c.PageDelay)
	queryLimiter = newLimiter(c.QueryDelay)
	fallbackLimiter = newLimiter(c.FallbackDelay)
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
