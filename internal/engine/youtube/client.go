// Package youtube speaks the YouTube Data API v3 and builds contact records
// for individual channels.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/channelscout/channelscout/internal/engine"
)

// ErrChannelNotFound means the API returned no item for a channel id.
// Callers skip the channel; it is not an operator-visible failure.
var ErrChannelNotFound = errors.New("channel not found")

// QuotaError is a 403 whose payload names a quota/rate-limit reason.
// Fatal for the run: never retried, requires external remediation.
type QuotaError struct {
	Reason string
}

func (e *QuotaError) Error() string {
	return "youtube API quota exhausted: " + e.Reason
}

// quotaReasons are the error-reason values the Data API uses for quota and
// rate-limit rejections.
var quotaReasons = map[string]bool{
	"quotaExceeded":      true,
	"dailyLimitExceeded": true,
	"rateLimitExceeded":  true,
}

// --- Data API v3 response types ---

type searchResponse struct {
	Items []struct {
		Snippet struct {
			ChannelID string `json:"channelId"`
		} `json:"snippet"`
	} `json:"items"`
}

type channelsResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			CustomURL   string `json:"customUrl"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type apiErrorResponse struct {
	Error struct {
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// quotaReason returns the first quota-class reason in the payload, or "".
func (r *apiErrorResponse) quotaReason() string {
	for _, e := range r.Error.Errors {
		if quotaReasons[e.Reason] {
			return e.Reason
		}
	}
	return ""
}

// Search returns channel ids matching query, in API relevance order.
// Transient failures are retried with linear backoff; a quota rejection is
// returned as *QuotaError without retrying.
func Search(ctx context.Context, query string) ([]string, error) {
	engine.IncrSearchRequest()

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "channel")
	params.Set("maxResults", strconv.Itoa(engine.Cfg.MaxSearchResults))
	params.Set("key", engine.Cfg.YouTubeAPIKey)
	if lang := engine.Cfg.RelevanceLanguage; lang != "" {
		params.Set("relevanceLanguage", lang)
	}

	var result searchResponse
	if err := apiGet(ctx, "/search", params, &result); err != nil {
		return nil, fmt.Errorf("channel search %q: %w", query, err)
	}

	ids := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		if item.Snippet.ChannelID == "" {
			continue
		}
		ids = append(ids, item.Snippet.ChannelID)
	}
	return ids, nil
}

// Channel is the API metadata the profile builder needs.
type Channel struct {
	ID          string
	Title       string
	Handle      string
	Subscribers int64
	Description string
}

// ChannelDetails fetches one channel's snippet and statistics by id.
func ChannelDetails(ctx context.Context, channelID string) (*Channel, error) {
	engine.IncrChannelRequest()

	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)
	params.Set("key", engine.Cfg.YouTubeAPIKey)

	var result channelsResponse
	if err := apiGet(ctx, "/channels", params, &result); err != nil {
		return nil, fmt.Errorf("channel details %s: %w", channelID, err)
	}
	if len(result.Items) == 0 {
		return nil, ErrChannelNotFound
	}

	item := result.Items[0]
	subs, _ := strconv.ParseInt(item.Statistics.SubscriberCount, 10, 64)
	if subs < 0 {
		subs = 0
	}
	return &Channel{
		ID:          channelID,
		Title:       item.Snippet.Title,
		Handle:      item.Snippet.CustomURL,
		Subscribers: subs,
		Description: item.Snippet.Description,
	}, nil
}

// apiGet performs one Data API call with retry and quota detection, decoding
// the JSON body into out.
func apiGet(ctx context.Context, path string, params url.Values, out any) error {
	apiURL := engine.Cfg.YouTubeAPIBase + path + "?" + params.Encode()

	resp, err := engine.RetryHTTP(ctx, engine.SearchRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr apiErrorResponse
		if json.Unmarshal(body, &apiErr) == nil {
			if reason := apiErr.quotaReason(); reason != "" {
				return &QuotaError{Reason: reason}
			}
		}
		return fmt.Errorf("youtube API 403: %s", engine.Truncate(string(body), 256))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("youtube API %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube API response: %w", err)
	}
	return nil
}
