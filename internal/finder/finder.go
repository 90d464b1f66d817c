// Package finder drives channel enumeration: queries through the Data API,
// profile building per discovered channel, budget-driven termination, and the
// scraping fallback backends when the budget is unmet.
package finder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/channelscout/channelscout/internal/engine"
	"github.com/channelscout/channelscout/internal/engine/contacts"
	"github.com/channelscout/channelscout/internal/engine/sources"
	"github.com/channelscout/channelscout/internal/engine/store"
	"github.com/channelscout/channelscout/internal/engine/youtube"
)

// Options configures one enumeration run.
type Options struct {
	Queries []string
	Store   *store.DB // nil disables seen-channel dedup
}

// Result summarizes a run. Records holds every profile built, in discovery
// order.
type Result struct {
	Records            []*contacts.Record
	EmailsFound        int
	FallbackCandidates int
}

// Run enumerates channels for each query in order until the email budget is
// reached or the queries are exhausted, then tries the fallback backends if
// the budget is still unmet. Per-channel failures are skipped; a quota
// rejection stops API enumeration and is returned alongside the partial
// result so the operator sees it, with already-built records intact.
func Run(ctx context.Context, opts Options) (*Result, error) {
	budget := NewBudget(engine.Cfg.EmailTarget)
	res := &Result{}

	quotaErr := enumerateAPI(ctx, opts, budget, res)

	if !budget.Reached() {
		slog.Info("email budget unmet, trying fallback backends",
			slog.Int("emails", budget.Count()), slog.Int("target", engine.Cfg.EmailTarget))
		enumerateFallback(ctx, opts, budget, res)
	}

	res.EmailsFound = budget.Count()
	return res, quotaErr
}

// enumerateAPI walks the primary Data API search path. Returns a *QuotaError
// when the API cut the run off; every other failure is local to its query or
// channel.
func enumerateAPI(ctx context.Context, opts Options, budget *Budget, res *Result) error {
	for _, query := range opts.Queries {
		if budget.Reached() {
			slog.Info("email budget reached, stopping search", slog.Int("emails", budget.Count()))
			return nil
		}
		if err := engine.WaitQuery(ctx); err != nil {
			return nil
		}

		slog.Info("searching channels", slog.String("query", query))
		ids, err := youtube.Search(ctx, query)
		if err != nil {
			var qe *youtube.QuotaError
			if errors.As(err, &qe) {
				slog.Error("youtube API quota exhausted, check your quota console",
					slog.String("reason", qe.Reason))
				return qe
			}
			slog.Warn("channel search failed, moving to next query",
				slog.String("query", query), slog.Any("error", err))
			continue
		}

		for _, id := range ids {
			if budget.Reached() {
				slog.Info("email budget reached, stopping search", slog.Int("emails", budget.Count()))
				return nil
			}
			if err := processChannel(ctx, opts, budget, res, id); err != nil {
				var qe *youtube.QuotaError
				if errors.As(err, &qe) {
					slog.Error("youtube API quota exhausted, check your quota console",
						slog.String("reason", qe.Reason))
					return qe
				}
			}
		}
	}
	return nil
}

// processChannel builds and records one channel profile. Only quota errors
// propagate; anything else is logged and swallowed.
func processChannel(ctx context.Context, opts Options, budget *Budget, res *Result, id string) error {
	if seen, err := opts.Store.Seen(id); err != nil {
		slog.Warn("seen-store lookup failed", slog.String("channel", id), slog.Any("error", err))
	} else if seen {
		slog.Debug("skipping already-profiled channel", slog.String("channel", id))
		return nil
	}

	rec, err := youtube.BuildProfile(ctx, id)
	if err != nil {
		var qe *youtube.QuotaError
		if errors.As(err, &qe) {
			return err
		}
		if errors.Is(err, youtube.ErrChannelNotFound) {
			slog.Debug("channel metadata absent", slog.String("channel", id))
		} else {
			slog.Warn("channel profile failed", slog.String("channel", id), slog.Any("error", err))
		}
		return nil
	}

	emails := len(rec.Emails)
	budget.Add(emails)
	if err := opts.Store.MarkSeen(id, emails); err != nil {
		slog.Warn("seen-store update failed", slog.String("channel", id), slog.Any("error", err))
	}

	res.Records = append(res.Records, rec)
	slog.Info("channel profiled",
		slog.String("channel", rec.ChannelName),
		slog.Int("emails", emails),
		slog.Int("total_emails", budget.Count()))
	return nil
}

// enumerateFallback runs the non-API backends over the same query list with
// the same budget check. Candidates are logged and counted, not built into
// profiles; a failing backend never blocks the rest.
func enumerateFallback(ctx context.Context, opts Options, budget *Budget, res *Result) {
	bc := engine.Cfg.BrowserClient
	for _, query := range opts.Queries {
		if budget.Reached() {
			return
		}
		if err := engine.WaitFallback(ctx); err != nil {
			return
		}

		if engine.Cfg.DirectDDG {
			refs, err := sources.FindChannelsDDG(ctx, bc, query)
			if err != nil {
				slog.Warn("ddg fallback failed", slog.String("query", query), slog.Any("error", err))
			}
			for _, ref := range refs {
				slog.Info("fallback candidate channel", slog.String("source", "ddg"), slog.String("ref", ref))
			}
			res.FallbackCandidates += len(refs)
		}

		if engine.Cfg.SocialBlade {
			refs, err := sources.FindChannelsSocialBlade(ctx, bc, query)
			if err != nil {
				slog.Warn("socialblade fallback failed", slog.String("query", query), slog.Any("error", err))
			}
			res.FallbackCandidates += len(refs)
		}
	}
}
