// Package session owns the state of one form editing session: the current
// snapshot, its baseline, the save-enabled flag and validation markers.
package session

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/gdg-garage/diet-forms/internal/form"
	"github.com/google/uuid"
)

var ErrInvalidPanel = errors.New("invalid service panel")

type Session struct {
	ID uuid.UUID

	debouncer *form.Debouncer
	tracker   *form.Tracker

	mu            sync.Mutex
	form          form.Form
	saveEnabled   bool
	invalid       []string
	activeService int
	lastSeen      time.Time
}

// State is a read-only copy of a session for presentation.
type State struct {
	ID            uuid.UUID `json:"id"`
	Form          form.Form `json:"form"`
	SaveEnabled   bool      `json:"saveEnabled"`
	Changed       bool      `json:"changed"`
	Invalid       []string  `json:"invalid"`
	ActiveService int       `json:"activeService"`
}

// New starts a session on an empty form, which is also its baseline.
func New(id uuid.UUID, debounce time.Duration) *Session {
	return &Session{
		ID:        id,
		debouncer: form.NewDebouncer(debounce),
		tracker:   form.NewTracker(form.Form{}),
		form:      form.Form{}.Canonical(),
		invalid:   []string{},
		lastSeen:  time.Now(),
	}
}

// Update replaces the current snapshot. The save-enabled flag follows once
// the input burst settles.
func (s *Session) Update(f form.Form) {
	s.mu.Lock()
	s.form = f.Canonical()
	s.lastSeen = time.Now()
	s.mu.Unlock()

	s.debouncer.Call(s.evaluate)
}

func (s *Session) evaluate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveEnabled = s.tracker.HasChanged(s.form)
}

func (s *Session) Form() form.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Canonical()
}

// HasChanged compares the current snapshot with the baseline right away,
// without waiting for the debounce.
func (s *Session) HasChanged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.HasChanged(s.form)
}

func (s *Session) SaveEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveEnabled
}

func (s *Session) Diff() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Diff(s.form)
}

// Load replaces the form and makes it the new baseline. Validation markers
// are cleared and the first service panel is selected.
func (s *Session) Load(f form.Form) {
	s.debouncer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f.Canonical()
	s.tracker.Reset(s.form)
	s.saveEnabled = false
	s.invalid = []string{}
	s.activeService = 0
	s.lastSeen = time.Now()
}

// Reset empties the form.
func (s *Session) Reset() {
	s.Load(form.Form{})
}

// MarkSaved makes the snapshot that was just persisted the baseline. Edits
// pushed while the save was running still count as changes.
func (s *Session) MarkSaved(saved form.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset(saved)
	s.saveEnabled = s.tracker.HasChanged(s.form)
	s.invalid = []string{}
}

func (s *Session) SetInvalid(fields []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fields == nil {
		fields = []string{}
	}
	s.invalid = slices.Clone(fields)
}

func (s *Session) Invalid() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.invalid)
}

func (s *Session) SetActiveService(i int) error {
	if i < 0 {
		return ErrInvalidPanel
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeService = i
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return State{
		ID:            s.ID,
		Form:          s.form.Canonical(),
		SaveEnabled:   s.saveEnabled,
		Changed:       s.tracker.HasChanged(s.form),
		Invalid:       slices.Clone(s.invalid),
		ActiveService: s.activeService,
	}
}

// Close drops any pending change evaluation.
func (s *Session) Close() {
	s.debouncer.Stop()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
