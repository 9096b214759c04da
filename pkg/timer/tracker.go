package timer

import (
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/nittiva/trackboard/pkg/storage"
)

// EntriesKey is where the serialized entry log lives in the durable store.
const EntriesKey = "timeTrackerEntries"

// State of the tracker. Exactly one entry can be active at a time; pausing
// keeps the entry open but stops the clock from being displayed as running.
type State int

const (
	StateIdle State = iota
	StateTracking
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Tracker owns the time-entry log and the single in-flight entry. Completed
// entries are persisted after every completing or deleting transition; the
// active entry is deliberately not durable, an in-progress entry lost on
// crash is accepted.
type Tracker struct {
	store storage.KV
	now   func() time.Time

	entries    []*TimeEntry
	active     *TimeEntry
	tracking   bool
	totalToday int64

	onTick   func(elapsed time.Duration)
	stopTick chan struct{}

	mx sync.Mutex
}

func NewTracker(store storage.KV) *Tracker {
	return &Tracker{
		store: store,
		now:   time.Now,
	}
}

// SetTickFunc installs a callback invoked once per second while tracking.
// This drives live duration display only; it never changes completed entries.
func (t *Tracker) SetTickFunc(fn func(elapsed time.Duration)) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.onTick = fn
}

// Load rehydrates completed entries from the store and recomputes today's
// total. A corrupt payload is logged and the tracker starts empty.
func (t *Tracker) Load() error {
	raw, ok, err := t.store.Get(EntriesKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var entries []*TimeEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Println("failed to load time tracker entries:", err)
		return nil
	}

	t.mx.Lock()
	defer t.mx.Unlock()
	t.entries = entries
	t.totalToday = 0
	today := t.now()
	for _, e := range t.entries {
		e.IsActive = false
		if e.startedOn(today) {
			t.totalToday += e.Duration
		}
	}
	return nil
}

// Start opens a new active entry. If an entry is already active it is stopped
// and appended to the log first; starting never discards tracked time.
func (t *Tracker) Start(taskID, description string) (*TimeEntry, error) {
	t.mx.Lock()
	defer t.mx.Unlock()

	var persistErr error
	if t.active != nil {
		persistErr = t.stopLocked()
	}

	now := t.now()
	t.active = &TimeEntry{
		ID:          strconv.FormatInt(now.UnixNano(), 10),
		TaskID:      taskID,
		StartTime:   now,
		Description: description,
		IsActive:    true,
	}
	t.tracking = true
	t.startTickerLocked()
	return t.active, persistErr
}

// Stop finalizes the active entry: stamps the end time, fixes the duration,
// appends it to the log and persists. No-op when idle.
func (t *Tracker) Stop() (*TimeEntry, error) {
	t.mx.Lock()
	defer t.mx.Unlock()
	if t.active == nil {
		return nil, nil
	}
	done := t.active
	err := t.stopLocked()
	return done, err
}

// Pause keeps the active entry open but stops the running clock. No-op when
// idle or already paused.
func (t *Tracker) Pause() {
	t.mx.Lock()
	defer t.mx.Unlock()
	if t.active == nil || !t.tracking {
		return
	}
	t.tracking = false
	t.stopTickerLocked()
}

// Resume restarts the clock on a paused entry. No-op when idle or already
// tracking.
func (t *Tracker) Resume() {
	t.mx.Lock()
	defer t.mx.Unlock()
	if t.active == nil || t.tracking {
		return
	}
	t.tracking = true
	t.startTickerLocked()
}

// DeleteEntry removes a completed entry by id. Today's total only shrinks
// when the deleted entry started today. The active entry is never affected.
func (t *Tracker) DeleteEntry(id string) (bool, error) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, e := range t.entries {
		if e.ID != id {
			continue
		}
		t.entries = append(t.entries[:i], t.entries[i+1:]...)
		if e.startedOn(t.now()) {
			t.totalToday -= e.Duration
		}
		return true, t.persistLocked()
	}
	return false, nil
}

func (t *Tracker) State() State {
	t.mx.Lock()
	defer t.mx.Unlock()
	if t.active == nil {
		return StateIdle
	}
	if t.tracking {
		return StateTracking
	}
	return StatePaused
}

func (t *Tracker) IsTracking() bool {
	t.mx.Lock()
	defer t.mx.Unlock()
	return t.active != nil && t.tracking
}

// ActiveEntry returns a copy of the in-flight entry, or nil when idle.
func (t *Tracker) ActiveEntry() *TimeEntry {
	t.mx.Lock()
	defer t.mx.Unlock()
	if t.active == nil {
		return nil
	}
	cp := *t.active
	return &cp
}

// Entries returns a copy of the completed-entry log in completion order.
func (t *Tracker) Entries() []TimeEntry {
	t.mx.Lock()
	defer t.mx.Unlock()
	entries := make([]TimeEntry, 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, *e)
	}
	return entries
}

// TotalTimeToday returns the summed milliseconds of entries started today.
func (t *Tracker) TotalTimeToday() int64 {
	t.mx.Lock()
	defer t.mx.Unlock()
	return t.totalToday
}

// CurrentDuration returns the running elapsed time of the active entry, zero
// when idle or paused.
func (t *Tracker) CurrentDuration() time.Duration {
	t.mx.Lock()
	defer t.mx.Unlock()
	if t.active == nil || !t.tracking {
		return 0
	}
	return Elapsed(t.active.StartTime, t.now())
}

// TaskTotal sums completed-entry durations for one task, in milliseconds.
func (t *Tracker) TaskTotal(taskID string) int64 {
	t.mx.Lock()
	defer t.mx.Unlock()
	var total int64
	for _, e := range t.entries {
		if e.TaskID == taskID {
			total += e.Duration
		}
	}
	return total
}

// EntriesForDay filters completed entries to those started on the given day.
func (t *Tracker) EntriesForDay(day time.Time) []TimeEntry {
	t.mx.Lock()
	defer t.mx.Unlock()
	var entries []TimeEntry
	for _, e := range t.entries {
		if e.startedOn(day) {
			entries = append(entries, *e)
		}
	}
	return entries
}

func (t *Tracker) stopLocked() error {
	end := t.now()
	done := t.active
	endTime := end
	done.EndTime = &endTime
	done.Duration = int64(Elapsed(done.StartTime, end) / time.Millisecond)
	done.IsActive = false

	t.entries = append(t.entries, done)
	t.totalToday += done.Duration
	t.active = nil
	t.tracking = false
	t.stopTickerLocked()
	return t.persistLocked()
}

func (t *Tracker) persistLocked() error {
	b, err := json.Marshal(t.entries)
	if err != nil {
		return err
	}
	if err := t.store.Set(EntriesKey, string(b)); err != nil {
		log.Println("failed to persist time tracker entries:", err)
		return err
	}
	return nil
}

func (t *Tracker) startTickerLocked() {
	if t.onTick == nil || t.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	t.stopTick = stop
	go func() {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				t.tick()
			}
		}
	}()
}

func (t *Tracker) stopTickerLocked() {
	if t.stopTick == nil {
		return
	}
	close(t.stopTick)
	t.stopTick = nil
}

func (t *Tracker) tick() {
	t.mx.Lock()
	if t.active == nil || !t.tracking {
		t.mx.Unlock()
		return
	}
	elapsed := Elapsed(t.active.StartTime, t.now())
	t.active.Duration = int64(elapsed / time.Millisecond)
	fn := t.onTick
	t.mx.Unlock()

	if fn != nil {
		fn(elapsed)
	}
}
