// Package sources holds the fallback discovery backends: best-effort channel
// enumeration that does not touch the Data API or its quota.
package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/channelscout/channelscout/internal/engine"
)

// channelRefRE pulls a channel identifier out of any YouTube channel URL
// shape: /channel/<id>, /@handle, or legacy /c/<name>.
var channelRefRE = regexp.MustCompile(`youtube\.com/(?:channel/|@|c/)([^/\s"?&#]+)`)

// maxDDGCandidates bounds how many refs one query may contribute.
const maxDDGCandidates = 10

// FindChannelsDDG searches DuckDuckGo's HTML endpoint for YouTube channel
// pages matching query and returns up to ten distinct channel refs. The
// query is scoped to youtube.com and biased toward Spanish contact pages.
func FindChannelsDDG(ctx context.Context, bc *engine.BrowserClient, query string) ([]string, error) {
	if bc == nil {
		return nil, fmt.Errorf("ddg: no browser client configured")
	}
	engine.IncrDDGRequest()

	searchQuery := "site:youtube.com " + query + " spanish español contact email"
	formBody := "q=" + url.QueryEscape(searchQuery) + "&kl=es-es&df="

	headers := engine.ChromeHeaders()
	headers["referer"] = "https://html.duckduckgo.com/"
	headers["content-type"] = "application/x-www-form-urlencoded"

	data, status, err := bc.Do("POST", "https://html.duckduckgo.com/html/", headers, strings.NewReader(formBody))
	if err != nil {
		return nil, fmt.Errorf("ddg request: %w", err)
	}
	if status != 200 {
		return nil, fmt.Errorf("ddg status %d", status)
	}

	refs := parseDDGChannels(data)
	if len(refs) == 0 {
		// Result markup shifts now and then; fall back to scanning the raw body.
		refs = scanChannelRefs(string(data), maxDDGCandidates)
	}
	return refs, nil
}

// parseDDGChannels extracts channel refs from DDG HTML result links.
func parseDDGChannels(data []byte) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var refs []string

	doc.Find(".result a.result__a, .web-result a.result__a, .result__title a").Each(func(i int, s *goquery.Selection) {
		if len(refs) >= maxDDGCandidates {
			return
		}
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = unwrapDDGURL(href)
		m := channelRefRE.FindStringSubmatch(href)
		if len(m) < 2 || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		refs = append(refs, m[1])
	})

	return refs
}

// unwrapDDGURL extracts the target URL from DDG redirect wrappers
// (//duckduckgo.com/l/?uddg=https%3A%2F%2F...&rut=...).
func unwrapDDGURL(href string) string {
	if strings.Contains(href, "duckduckgo.com/l/") || strings.Contains(href, "uddg=") {
		if u, err := url.Parse(href); err == nil {
			if uddg := u.Query().Get("uddg"); uddg != "" {
				return uddg
			}
		}
	}
	return href
}

// scanChannelRefs regex-scans raw HTML for channel refs, deduplicated, capped
// at limit.
func scanChannelRefs(body string, limit int) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, m := range channelRefRE.FindAllStringSubmatch(body, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		refs = append(refs, m[1])
		if len(refs) >= limit {
			break
		}
	}
	return refs
}
