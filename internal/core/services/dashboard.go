package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

const (
	DefaultPollInterval = 15 * time.Second
	DefaultRequestLimit = 100
)

type Filter struct {
	Status domain.RequestStatus
	Query  string
}

// Snapshot is a consistent copy of the dashboard state.
type Snapshot struct {
	Requests []domain.ServiceRequest
	Contacts []domain.Contact
	Users    []domain.Account
	Stats    domain.OverviewStats
	Filter   Filter
	Loading  bool
	LoadedAt time.Time
	LastErr  error
}

type DashboardOptions struct {
	PollInterval time.Duration
	RequestLimit int
	Toaster      ports.Toaster
	Notifier     ports.DispatchNotifier
	Logger       *logger.Logger
	// OnChange runs after every load attempt that was not cancelled.
	OnChange func(Snapshot)
}

// Dashboard loads and periodically refreshes the data shared by the staff
// views.
type Dashboard struct {
	api      ports.Backend
	toast    ports.Toaster
	notifier ports.DispatchNotifier
	log      *logger.Logger
	interval time.Duration
	limit    int
	onChange func(Snapshot)

	mu        sync.RWMutex
	filter    Filter
	requests  []domain.ServiceRequest
	contacts  []domain.Contact
	users     []domain.Account
	stats     domain.OverviewStats
	inflight  int
	loadedAt  time.Time
	lastErr   error
	seq       uint64
	committed uint64
}

func newDashboard(api ports.Backend, opts DashboardOptions) *Dashboard {
	d := &Dashboard{
		api:      api,
		toast:    opts.Toaster,
		notifier: opts.Notifier,
		log:      opts.Logger,
		interval: opts.PollInterval,
		limit:    opts.RequestLimit,
		onChange: opts.OnChange,
		requests: []domain.ServiceRequest{},
		contacts: []domain.Contact{},
		users:    []domain.Account{},
	}
	if d.interval <= 0 {
		d.interval = DefaultPollInterval
	}
	if d.limit <= 0 {
		d.limit = DefaultRequestLimit
	}
	if d.toast == nil {
		d.toast = nopToaster{}
	}
	if d.notifier == nil {
		d.notifier = ports.NopNotifier{}
	}
	if d.log == nil {
		d.log = logger.Discard()
	}
	return d
}

// Load fetches requests, contacts, users and stats in parallel and commits
// them together. On failure the previous state is kept.
func (d *Dashboard) Load(ctx context.Context) error {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	filter := d.filter
	d.inflight++
	d.mu.Unlock()

	var (
		requests []domain.ServiceRequest
		contacts []domain.Contact
		users    []domain.Account
		stats    domain.OverviewStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requests, err = d.api.FetchRequests(gctx, domain.RequestFilter{
			Status: filter.Status,
			Query:  filter.Query,
			Limit:  d.limit,
		})
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = d.api.FetchContacts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = d.api.FetchUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = d.api.FetchOverviewStats(gctx)
		return err
	})
	err := g.Wait()

	d.mu.Lock()
	d.inflight--
	stale := seq <= d.committed
	switch {
	case err != nil && stale:
		d.log.Debugf("dashboard: ignoring failure of stale load #%d: %v", seq, err)
	case err != nil:
		d.lastErr = err
	case !stale:
		d.requests = orEmpty(requests)
		d.contacts = orEmpty(contacts)
		d.users = orEmpty(users)
		d.stats = stats
		d.committed = seq
		d.loadedAt = time.Now()
		d.lastErr = nil
	default:
		d.log.Debugf("dashboard: dropping stale load #%d, #%d already committed", seq, d.committed)
	}
	snap := d.snapshotLocked()
	d.mu.Unlock()

	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !stale {
		d.log.Errorf("dashboard: load failed: %v", err)
		d.toast.Error(MsgLoadDashboard)
	}
	if d.onChange != nil {
		d.onChange(snap)
	}
	return err
}

// Run loads immediately and then every poll interval until ctx is done.
func (d *Dashboard) Run(ctx context.Context) error {
	_ = d.Load(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = d.Load(ctx)
		}
	}
}

func (d *Dashboard) SetFilter(ctx context.Context, f Filter) error {
	d.mu.Lock()
	d.filter = f
	d.mu.Unlock()
	return d.Load(ctx)
}

func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshotLocked()
}

func (d *Dashboard) snapshotLocked() Snapshot {
	return Snapshot{
		Requests: append([]domain.ServiceRequest{}, d.requests...),
		Contacts: append([]domain.Contact{}, d.contacts...),
		Users:    append([]domain.Account{}, d.users...),
		Stats:    d.stats,
		Filter:   d.filter,
		Loading:  d.inflight > 0,
		LoadedAt: d.loadedAt,
		LastErr:  d.lastErr,
	}
}

func (d *Dashboard) findRequest(id domain.ID) (domain.ServiceRequest, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, r := range d.requests {
		if r.ID == id {
			return r, true
		}
	}
	return domain.ServiceRequest{}, false
}

// reload refreshes after a successful mutation. Load reports its own failure.
func (d *Dashboard) reload(ctx context.Context) {
	_ = d.Load(ctx)
}

// Resolve marks a request Completed. Requests already Completed in the
// loaded state are rejected without a backend call.
func (d *Dashboard) Resolve(ctx context.Context, id domain.ID) error {
	if req, ok := d.findRequest(id); ok && req.IsCompleted() {
		return domain.ErrRequestCompleted
	}

	if err := d.api.UpdateRequestStatus(ctx, id.String(), domain.StatusCompleted); err != nil {
		d.log.Errorf("dashboard: resolve %s: %v", id, err)
		d.toast.Error(MsgUpdateStatusFailed)
		return err
	}
	d.toast.Success(MsgRequestCompleted)
	d.reload(ctx)
	return nil
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

type nopToaster struct{}

func (nopToaster) Success(string) {}
func (nopToaster) Error(string)   {}
