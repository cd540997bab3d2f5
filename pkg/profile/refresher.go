package profile

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const DefaultFetchTimeout = 10 * time.Second

var errNoSource = errors.New("source not configured")

// Sources groups the four collaborators. A nil source always yields an
// empty slot.
type Sources struct {
	GitHub   Fetcher[GitHub]
	LeetCode Fetcher[LeetCode]
	Medium   Fetcher[Medium]
	LinkedIn Fetcher[LinkedIn]
}

// Persister keeps a copy of the snapshot outside the process so a restart
// can serve the last known data before the first refresh settles.
type Persister interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	LoadSnapshot(ctx context.Context) (Snapshot, bool, error)
}

type Refresher struct {
	log       *logrus.Logger
	store     *Store
	sources   Sources
	timeout   time.Duration
	preserve  bool
	persister Persister
	now       func() time.Time
	group     singleflight.Group
}

type Option func(*Refresher)

func WithFetchTimeout(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithPreserveOnFailure keeps the previous value of a slot whose fetch fails
// instead of clearing it.
func WithPreserveOnFailure(preserve bool) Option {
	return func(r *Refresher) {
		r.preserve = preserve
	}
}

func WithPersister(p Persister) Option {
	return func(r *Refresher) {
		r.persister = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Refresher) {
		r.now = now
	}
}

func NewRefresher(log *logrus.Logger, store *Store, sources Sources, opts ...Option) *Refresher {
	r := &Refresher{
		log:     log,
		store:   store,
		sources: sources,
		timeout: DefaultFetchTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh fetches every source concurrently and replaces the store's
// snapshot. Concurrent callers share one in-flight refresh. Cancelling ctx
// does not abort a refresh other callers may be waiting on; each fetch is
// bounded by its own timeout instead.
func (r *Refresher) Refresh(ctx context.Context) Snapshot {
	v, _, _ := r.group.Do("refresh", func() (any, error) {
		return r.refresh(context.WithoutCancel(ctx)), nil
	})
	return v.(Snapshot)
}

// Snapshot returns the current snapshot without refreshing.
func (r *Refresher) Snapshot() Snapshot {
	return r.store.Snapshot()
}

// EnsureFresh refreshes only when the stored snapshot is stale.
func (r *Refresher) EnsureFresh(ctx context.Context) Snapshot {
	if !r.store.Stale(r.now()) {
		return r.store.Snapshot()
	}
	return r.refreshIfStale(ctx)
}

// refreshIfStale checks staleness again inside the shared call. A caller that
// saw a stale store just before another refresh landed reuses that result.
func (r *Refresher) refreshIfStale(ctx context.Context) Snapshot {
	v, _, _ := r.group.Do("refresh", func() (any, error) {
		if !r.store.Stale(r.now()) {
			return r.store.Snapshot(), nil
		}
		return r.refresh(context.WithoutCancel(ctx)), nil
	})
	return v.(Snapshot)
}

// Warm loads a persisted snapshot into an empty store.
func (r *Refresher) Warm(ctx context.Context) bool {
	if r.persister == nil {
		return false
	}

	snap, ok, err := r.persister.LoadSnapshot(ctx)
	if err != nil {
		r.log.WithField("error", err.Error()).Warn("failed to load persisted profile snapshot")
		return false
	}
	if !ok {
		return false
	}

	r.store.Replace(snap)
	r.log.WithField("last_fetch", snap.LastFetch).Info("profile snapshot restored")
	return true
}

func (r *Refresher) refresh(ctx context.Context) Snapshot {
	prev := r.store.Snapshot()
	var next Snapshot

	var g errgroup.Group
	g.Go(func() error {
		next.GitHub = fetchSlot(ctx, r, "github", r.sources.GitHub)
		return nil
	})
	g.Go(func() error {
		next.LeetCode = fetchSlot(ctx, r, "leetcode", r.sources.LeetCode)
		return nil
	})
	g.Go(func() error {
		next.Medium = fetchSlot(ctx, r, "medium", r.sources.Medium)
		return nil
	})
	g.Go(func() error {
		next.LinkedIn = fetchSlot(ctx, r, "linkedin", r.sources.LinkedIn)
		return nil
	})
	_ = g.Wait()

	if r.preserve {
		next.GitHub = keep(next.GitHub, prev.GitHub)
		next.LeetCode = keep(next.LeetCode, prev.LeetCode)
		next.Medium = keep(next.Medium, prev.Medium)
		next.LinkedIn = keep(next.LinkedIn, prev.LinkedIn)
	}
	next.LastFetch = r.now()

	r.store.Replace(next)

	fields := logrus.Fields{}
	for slot, ok := range next.Presence() {
		fields[slot] = ok
	}
	r.log.WithFields(fields).Info("profile data refreshed")

	if r.persister != nil {
		if err := r.persister.SaveSnapshot(ctx, next); err != nil {
			r.log.WithField("error", err.Error()).Warn("failed to persist profile snapshot")
		}
	}

	return next
}

func fetchSlot[T any](ctx context.Context, r *Refresher, name string, f Fetcher[T]) *T {
	if f == nil {
		r.log.WithField("source", name).Debug(errNoSource.Error())
		return nil
	}

	fctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	v, err := f.Fetch(fctx)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"source": name,
			"error":  err.Error(),
		}).Warn("profile fetch failed")
		return nil
	}
	return v
}

func keep[T any](next, prev *T) *T {
	if next == nil {
		return prev
	}
	return next
}
