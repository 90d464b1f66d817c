package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/channelscout/channelscout/internal/engine"
)

// FindChannelsSocialBlade queries Social Blade's YouTube search. The fetch
// verifies the backend is reachable; result-table parsing is not implemented,
// so it currently contributes zero candidates.
//
// TODO: parse the results table (top-list rows carry /youtube/channel/<id>
// links) into channel refs.
func FindChannelsSocialBlade(ctx context.Context, bc *engine.BrowserClient, query string) ([]string, error) {
	if bc == nil {
		return nil, fmt.Errorf("socialblade: no browser client configured")
	}
	engine.IncrSocialBlade()

	searchURL := "https://socialblade.com/youtube/search/search?query=" + url.QueryEscape(query)

	headers := engine.ChromeHeaders()
	headers["referer"] = "https://socialblade.com/"

	_, status, err := bc.Do("GET", searchURL, headers, nil)
	if err != nil {
		return nil, fmt.Errorf("socialblade request: %w", err)
	}
	if status != 200 {
		return nil, fmt.Errorf("socialblade status %d", status)
	}
	return nil, nil
}
