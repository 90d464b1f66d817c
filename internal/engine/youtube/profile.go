package youtube

import (
	"context"
	"log/slog"

	"github.com/channelscout/channelscout/internal/engine"
	"github.com/channelscout/channelscout/internal/engine/contacts"
)

// BuildProfile assembles the contact record for one channel: API metadata,
// contact extraction over the description, then over up to three scraped
// page variants. Returns ErrChannelNotFound when the API has no such channel.
func BuildProfile(ctx context.Context, channelID string) (*contacts.Record, error) {
	ch, err := ChannelDetails(ctx, channelID)
	if err != nil {
		return nil, err
	}

	rec := contacts.NewRecord()
	rec.ChannelName = ch.Title
	rec.ChannelURL = "https://www.youtube.com/channel/" + channelID
	rec.Handle = ch.Handle
	rec.Subscribers = ch.Subscribers
	rec.Description = ch.Description

	rec.Absorb(contacts.Extract(ch.Description))

	scrapeChannelPages(ctx, rec)

	return rec, nil
}

// pageVariants lists the page URLs worth scraping for a record, in order:
// canonical channel URL, handle URL when a handle exists, the about page.
func pageVariants(rec *contacts.Record) []string {
	variants := []string{rec.ChannelURL}
	if rec.Handle != "" {
		variants = append(variants, "https://www.youtube.com/"+rec.Handle)
	}
	return append(variants, rec.ChannelURL+"/about")
}

// scrapeChannelPages merges contact data from each retrievable page variant
// into rec. A failed variant is skipped; partial data collection is fine.
// When the API description was empty, the first scraped page backfills it
// from the page's meta description or readable text.
func scrapeChannelPages(ctx context.Context, rec *contacts.Record) {
	for _, pageURL := range pageVariants(rec) {
		if err := engine.WaitPage(ctx); err != nil {
			return
		}
		body, err := engine.FetchPage(ctx, pageURL)
		if err != nil {
			slog.Debug("channel page fetch failed",
				slog.String("url", pageURL), slog.Any("error", err))
			continue
		}
		rec.Absorb(contacts.Extract(string(body)))

		if rec.Description == "" {
			if desc := engine.MetaDescription(body); desc != "" {
				rec.Description = desc
			} else if text := engine.PageText(body); text != "" {
				rec.Description = text
			}
		}
	}
}
