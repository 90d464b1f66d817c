package youtube

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/channelscout/channelscout/internal/engine"
)

// fastRetries swaps the 5s linear policy for a millisecond one during a test.
func fastRetries(t *testing.T) {
	t.Helper()
	saved := engine.SearchRetryConfig
	engine.SearchRetryConfig = engine.RetryConfig{MaxAttempts: 3, Backoff: engine.LinearBackoff(time.Millisecond)}
	t.Cleanup(func() { engine.SearchRetryConfig = saved })
}

func testInit(t *testing.T, srv *httptest.Server) {
	t.Helper()
	engine.Init(engine.Config{
		YouTubeAPIKey:     "test-key",
		YouTubeAPIBase:    srv.URL,
		RelevanceLanguage: "es",
		HTTPClient:        srv.Client(),
	})
}

func searchPayload(ids ...string) []byte {
	type snippet struct {
		ChannelID string `json:"channelId"`
	}
	var items []map[string]snippet
	for _, id := range ids {
		items = append(items, map[string]snippet{"snippet": {ChannelID: id}})
	}
	b, _ := json.Marshal(map[string]any{"items": items})
	return b
}

func TestSearchReturnsChannelIDs(t *testing.T) {
	var gotQuery, gotLang, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s, want /search", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotLang = r.URL.Query().Get("relevanceLanguage")
		gotType = r.URL.Query().Get("type")
		w.Write(searchPayload("UC111", "UC222"))
	}))
	defer srv.Close()
	testInit(t, srv)

	ids, err := Search(t.Context(), "cocina española")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 2 || ids[0] != "UC111" || ids[1] != "UC222" {
		t.Errorf("ids = %v", ids)
	}
	if gotQuery != "cocina española" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotLang != "es" {
		t.Errorf("relevanceLanguage = %q", gotLang)
	}
	if gotType != "channel" {
		t.Errorf("type = %q", gotType)
	}
}

func TestSearchRetriesTransientStatus(t *testing.T) {
	fastRetries(t)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(searchPayload("UC111"))
	}))
	defer srv.Close()
	testInit(t, srv)

	ids, err := Search(t.Context(), "q")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(ids) != 1 {
		t.Errorf("ids = %v", ids)
	}
}

func TestSearchQuotaError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"errors":[{"reason":"quotaExceeded"}]}}`))
	}))
	defer srv.Close()
	testInit(t, srv)

	_, err := Search(t.Context(), "q")
	var qe *QuotaError
	if !errors.As(err, &qe) {
		t.Fatalf("err = %v, want *QuotaError", err)
	}
	if qe.Reason != "quotaExceeded" {
		t.Errorf("reason = %q", qe.Reason)
	}
	if calls != 1 {
		t.Errorf("quota rejection retried: %d calls", calls)
	}
}

func TestSearchForbiddenWithoutQuotaReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"errors":[{"reason":"forbidden"}]}}`))
	}))
	defer srv.Close()
	testInit(t, srv)

	_, err := Search(t.Context(), "q")
	if err == nil {
		t.Fatal("expected error")
	}
	var qe *QuotaError
	if errors.As(err, &qe) {
		t.Error("plain 403 must not be a QuotaError")
	}
}

func TestChannelDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "UC111" {
			t.Errorf("id = %q", got)
		}
		w.Write([]byte(`{"items":[{
			"snippet":{"title":"Cocina con Ana","description":"Recetas. ana@canal.es","customUrl":"@cocinaconana"},
			"statistics":{"subscriberCount":"12500"}
		}]}`))
	}))
	defer srv.Close()
	testInit(t, srv)

	ch, err := ChannelDetails(t.Context(), "UC111")
	if err != nil {
		t.Fatalf("ChannelDetails: %v", err)
	}
	if ch.Title != "Cocina con Ana" {
		t.Errorf("title = %q", ch.Title)
	}
	if ch.Handle != "@cocinaconana" {
		t.Errorf("handle = %q", ch.Handle)
	}
	if ch.Subscribers != 12500 {
		t.Errorf("subscribers = %d", ch.Subscribers)
	}
}

func TestChannelDetailsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()
	testInit(t, srv)

	_, err := ChannelDetails(t.Context(), "UCmissing")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("err = %v, want ErrChannelNotFound", err)
	}
}

func TestChannelDetailsMissingSubscriberCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"snippet":{"title":"Canal"},"statistics":{}}]}`))
	}))
	defer srv.Close()
	testInit(t, srv)

	ch, err := ChannelDetails(t.Context(), "UC111")
	if err != nil {
		t.Fatalf("ChannelDetails: %v", err)
	}
	if ch.Subscribers != 0 {
		t.Errorf("subscribers = %d, want 0", ch.Subscribers)
	}
}
