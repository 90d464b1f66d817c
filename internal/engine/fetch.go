package engine

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/cenkalti/backoff/v5"
	"golang.org/x/net/html"
)

// fetchBodyLimit caps channel page bodies; YouTube pages run to several MB
// of script but the contact surface sits well inside this.
const fetchBodyLimit = 4 * 1024 * 1024

// newFetchClient creates an HTTP client with proper settings for web scraping.
func newFetchClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 15 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			return nil
		},
	}
}

// FetchPage performs an HTTP GET with exponential backoff and returns the
// page body. Non-200 responses other than retryable statuses fail permanently.
func FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	IncrPageFetch()

	client := cfg.HTTPClient
	if client == nil {
		client = newFetchClient()
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", RandomUserAgent())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")
		req.Header.Set("Accept-Encoding", "gzip, deflate")

		// Transport failures (dial, reset, timeout) are transient: retry.
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("status %d", resp.StatusCode))
		}
		return readResponseBody(resp)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second

	body, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(3), backoff.WithMaxElapsedTime(30*time.Second))
	if err != nil {
		IncrPageFetchError()
		return nil, err
	}
	return body, nil
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, fetchBodyLimit))
}

// PageText converts an HTML body to readable text via markdown conversion,
// falling back to tag stripping. Capped at MaxContentChars.
func PageText(body []byte) string {
	text, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		text = CleanHTML(string(body))
	}
	text = strings.TrimSpace(text)
	limit := cfg.MaxContentChars
	if limit <= 0 {
		limit = 6000
	}
	return Truncate(text, limit)
}

// MetaDescription walks the HTML tree for og:description or a description
// meta tag. Returns "" when neither is present or the body is not HTML.
func MetaDescription(body []byte) string {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}

	var ogDesc, metaDesc string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, property, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "name":
					name = a.Val
				case "property":
					property = a.Val
				case "content":
					content = a.Val
				}
			}
			if property == "og:description" && ogDesc == "" {
				ogDesc = content
			}
			if name == "description" && metaDesc == "" {
				metaDesc = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if ogDesc != "" {
		return strings.TrimSpace(ogDesc)
	}
	return strings.TrimSpace(metaDesc)
}
