// Package watch runs one grade check: scrape, reconcile, notify, persist.
package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"studentweb/pkg/grades"
	"studentweb/pkg/notify"
	"studentweb/pkg/portal"
	"studentweb/pkg/scraper"
)

// Fetcher retrieves the logged-in results page
type Fetcher interface {
	FetchResults(ctx context.Context, creds portal.Credentials) (*portal.Page, error)
}

// Store persists one grade set per variant between runs
type Store interface {
	Load(variant grades.Variant) (*grades.Set, error)
	Save(set grades.Set) error
}

// Notifier delivers a rendered message
type Notifier interface {
	Deliver(msg notify.Message) error
}

// Runner holds everything a check run depends on. Nothing is read from
// package state; a Runner can be built freely in tests.
type Runner struct {
	Fetcher     Fetcher
	Store       Store
	Notifier    Notifier
	Credentials portal.Credentials
	Tables      scraper.TableIDs
	Now         func() time.Time
	Log         zerolog.Logger
}

// RunOptions tune a single run
type RunOptions struct {
	// DryRun renders the message but neither sends it nor writes snapshots.
	DryRun bool
}

// PersistWarning records a snapshot that could not be written. The run still
// succeeds; the next run compares against the older snapshot.
type PersistWarning struct {
	Variant grades.Variant
	Err     error
}

func (w PersistWarning) Error() string {
	return fmt.Sprintf("save %s snapshot: %v", w.Variant, w.Err)
}

// Report summarizes what a run observed and did
type Report struct {
	Current         map[grades.Variant]grades.Set
	Baseline        []grades.Variant // variants that had no snapshot yet
	Batches         []notify.Batch
	Message         *notify.Message // nil when nothing changed
	Delivered       bool
	PersistWarnings []PersistWarning
}

// Changes returns the total number of notifications across all variants.
func (r *Report) Changes() int {
	n := 0
	for _, b := range r.Batches {
		n += len(b.Notifications)
	}
	return n
}

// Run performs one check. A malformed snapshot or a failed scrape aborts the run
// before anything is sent or written. A failed delivery is returned as the error,
// but only after the new snapshots have been saved.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	variants := r.Tables.Tracked()
	report := &Report{}

	previous := make(map[grades.Variant]*grades.Set, len(variants))
	for _, v := range variants {
		set, err := r.Store.Load(v)
		if err != nil {
			return nil, fmt.Errorf("load %s snapshot: %w", v, err)
		}
		if set == nil {
			r.Log.Info().Str("variant", string(v)).Msg("no previous results found, this run sets the baseline")
			report.Baseline = append(report.Baseline, v)
		}
		previous[v] = set
	}

	r.Log.Info().Msg("fetching results page")
	page, err := r.Fetcher.FetchResults(ctx, r.Credentials)
	if err != nil {
		return nil, err
	}

	current, err := scraper.ParseResults(strings.NewReader(page.HTML), r.Tables)
	if err != nil {
		return nil, fmt.Errorf("scrape results: %w", err)
	}
	report.Current = current

	for _, v := range variants {
		set := current[v]
		log := r.Log.With().Str("variant", string(v)).Logger()
		log.Debug().Int("count", len(set.Records)).Msg("results scraped")

		if dups := grades.DuplicateCodes(set.Records); len(dups) > 0 {
			log.Warn().Strs("course_codes", dups).Msg("duplicate course codes in results, the first occurrence is compared")
		}

		notifications := grades.Reconcile(set, previous[v])
		for _, n := range notifications {
			log.Info().
				Str("course_code", n.Current.CourseCode).
				Str("kind", n.Kind.String()).
				Str("grade", n.Current.Grade).
				Msg("grade change found")
		}
		report.Batches = append(report.Batches, notify.Batch{Variant: v, Notifications: notifications})
	}

	var deliverErr error
	if notify.Empty(report.Batches) {
		r.Log.Info().Msg("no changes in results found")
	} else {
		msg := notify.Render(r.now(), report.Batches, page.Screenshot)
		report.Message = &msg

		if !opts.DryRun {
			r.Log.Info().Int("count", report.Changes()).Msg("sending notification")
			if err := r.Notifier.Deliver(msg); err != nil {
				r.Log.Error().Err(err).Msg("notification could not be delivered")
				deliverErr = err
			} else {
				report.Delivered = true
			}
		}
	}

	if opts.DryRun {
		return report, nil
	}

	for _, v := range variants {
		if err := r.Store.Save(current[v]); err != nil {
			w := PersistWarning{Variant: v, Err: err}
			r.Log.Warn().Err(err).Str("variant", string(v)).Msg("failed to save results snapshot")
			report.PersistWarnings = append(report.PersistWarnings, w)
		}
	}

	return report, deliverErr
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
