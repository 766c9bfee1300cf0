// Package resolver combines the remote Wikidata lookup with the ISO 3166
// fallback into one result per query.
package resolver

import (
	"context"
	"errors"
	"log/slog"

	"countryname/pkg/tracker"
	"countryname/pkg/wikidata"
)

const (
	// StandardSuffix tags official names that came from the ISO catalog.
	StandardSuffix = " (ISO 3166 Standard)"
	// UnverifiedStatus is reported when neither source knows the name.
	UnverifiedStatus = "Unable to verify this country"
)

// Result sources, shared with the tracker's outcome counters.
const (
	SourceRemote     = tracker.OutcomeRemote
	SourceStandards  = tracker.OutcomeStandards
	SourceUnverified = tracker.OutcomeUnverified
)

// RemoteLookup resolves a name against the knowledge base.
type RemoteLookup interface {
	LookupCountry(ctx context.Context, name string) (wikidata.Match, bool, error)
}

// StandardsLookup resolves a name against the offline catalog.
type StandardsLookup interface {
	Lookup(name string) (string, bool)
}

// Result is the resolution of one query.
type Result struct {
	Query                string
	DisplayName          string
	OfficialNameOrStatus string
	Source               string
}

// String formats the result as "<display>: <official or status>".
func (r Result) String() string {
	return r.DisplayName + ": " + r.OfficialNameOrStatus
}

// Unverified is the result for a query no source could confirm.
func Unverified(query string) Result {
	return Result{
		Query:                query,
		DisplayName:          query,
		OfficialNameOrStatus: UnverifiedStatus,
		Source:               SourceUnverified,
	}
}

// Resolver applies the remote-then-standards policy.
type Resolver struct {
	remote    RemoteLookup
	standards StandardsLookup
	tracker   *tracker.Tracker
	logger    *slog.Logger
}

// New creates a Resolver. tr and logger may be nil.
func New(remote RemoteLookup, standards StandardsLookup, tr *tracker.Tracker, logger *slog.Logger) *Resolver {
	if tr == nil {
		tr = tracker.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		remote:    remote,
		standards: standards,
		tracker:   tr,
		logger:    logger,
	}
}

// Resolve never fails: remote errors count as "no match" and the worst
// outcome is the unverified status.
func (r *Resolver) Resolve(ctx context.Context, query string) Result {
	m := r.lookupRemote(ctx, query)

	if m.Complete() {
		r.tracker.TrackOutcome(SourceRemote)
		return Result{
			Query:                query,
			DisplayName:          m.CommonName,
			OfficialNameOrStatus: m.OfficialName,
			Source:               SourceRemote,
		}
	}

	std, ok := r.standards.Lookup(query)
	if !ok {
		r.logger.Info("Country could not be verified", "query", query)
		r.tracker.TrackOutcome(SourceUnverified)
		return Unverified(query)
	}

	// A remote label without an official name still wins as display name.
	display := m.CommonName
	if display == "" {
		display = query
	}
	r.logger.Debug("Using ISO 3166 fallback", "query", query, "standard", std, "remote_label", m.CommonName)
	r.tracker.TrackOutcome(SourceStandards)
	return Result{
		Query:                query,
		DisplayName:          display,
		OfficialNameOrStatus: std + StandardSuffix,
		Source:               SourceStandards,
	}
}

// lookupRemote is the error boundary around the knowledge base: every
// failure is logged and downgraded to an empty match.
func (r *Resolver) lookupRemote(ctx context.Context, query string) wikidata.Match {
	m, ok, err := r.remote.LookupCountry(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			r.logger.Debug("Remote lookup interrupted", "query", query, "error", err)
		case errors.Is(err, wikidata.ErrInvalidQuery):
			r.logger.Error("Remote lookup rejected the query", "query", query, "error", err)
		default:
			r.logger.Warn("Remote lookup failed, falling back to ISO 3166", "query", query, "error", err)
		}
		return wikidata.Match{}
	}
	if !ok {
		return wikidata.Match{}
	}
	return m
}
