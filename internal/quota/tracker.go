package quota

import (
	"time"
)

// DailyLimit is the default number of language-model calls per session per day.
const DailyLimit = 20

// State is the per-session counter. LastResetDate is truncated to a day.
type State struct {
	RequestCount  int       `json:"request_count"`
	LastResetDate time.Time `json:"last_reset_date"`
}

// Usage is a snapshot returned by Remaining.
type Usage struct {
	Remaining int `json:"remaining_requests"`
	Total     int `json:"total_requests"`
	Used      int `json:"used_requests"`
}

// Tracker gates calls to the language model. It is owned by one session and
// is not safe for concurrent use; the session lock covers it.
type Tracker struct {
	limit int
	now   func() time.Time
	state *State
}

type Option func(*Tracker)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLimit overrides DailyLimit. Values below 1 are ignored.
func WithLimit(limit int) Option {
	return func(t *Tracker) {
		if limit > 0 {
			t.limit = limit
		}
	}
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		limit: DailyLimit,
		now:   time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Tracker) today() time.Time {
	n := t.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

func (t *Tracker) ensure() {
	if t.state == nil {
		t.state = &State{LastResetDate: t.today()}
	}
}

// rollover zeroes the counter when the calendar day changed.
func (t *Tracker) rollover() {
	t.ensure()
	today := t.today()
	if !t.state.LastResetDate.Equal(today) {
		t.state.RequestCount = 0
		t.state.LastResetDate = today
	}
}

// Check rolls the day over if needed and reports whether another call fits
// under the limit. It mutates state.
func (t *Tracker) Check() bool {
	t.rollover()
	return t.state.RequestCount < t.limit
}

// Increment counts one call. It does not clamp at the limit.
func (t *Tracker) Increment() {
	t.ensure()
	t.state.RequestCount++
}

// Rollback undoes one Increment. There is no floor at zero.
func (t *Tracker) Rollback() {
	t.ensure()
	t.state.RequestCount--
}

// Remaining rolls the day over if needed and returns a snapshot.
func (t *Tracker) Remaining() Usage {
	t.rollover()
	return Usage{
		Remaining: t.limit - t.state.RequestCount,
		Total:     t.limit,
		Used:      t.state.RequestCount,
	}
}

// Reset zeroes the counter and stamps today.
func (t *Tracker) Reset() {
	t.state = &State{LastResetDate: t.today()}
}

// Snapshot returns a copy of the raw state without rolling over.
func (t *Tracker) Snapshot() State {
	t.ensure()
	return *t.state
}

// Restore replaces the raw state, e.g. to seed a tracker in tests.
func (t *Tracker) Restore(s State) {
	s.LastResetDate = time.Date(s.LastResetDate.Year(), s.LastResetDate.Month(), s.LastResetDate.Day(), 0, 0, 0, 0, s.LastResetDate.Location())
	t.state = &s
}

func (t *Tracker) Limit() int {
	return t.limit
}
