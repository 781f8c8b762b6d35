package form

import (
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
)

const diffContext = 3

// Tracker remembers the baseline snapshot of a form session.
type Tracker struct {
	mu       sync.RWMutex
	baseline string
}

// NewTracker starts with the given form as baseline.
func NewTracker(initial Form) *Tracker {
	return &Tracker{baseline: Serialize(initial)}
}

func (t *Tracker) SetBaseline(serialized string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.baseline = serialized
}

func (t *Tracker) Baseline() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.baseline
}

// Reset makes f the new baseline.
func (t *Tracker) Reset(f Form) {
	t.SetBaseline(Serialize(f))
}

// HasChanged reports whether f differs from the baseline.
func (t *Tracker) HasChanged(f Form) bool {
	return Serialize(f) != t.Baseline()
}

// Diff returns a unified diff of the baseline against f, or "" when nothing
// changed.
func (t *Tracker) Diff(f Form) string {
	return unified("baseline", "current", indented(t.Baseline()), indented(Serialize(f)))
}

// Diff returns a unified diff between two forms, or "" when they serialize
// identically.
func Diff(fromName, toName string, from, to Form) string {
	return unified(fromName, toName, indented(Serialize(from)), indented(Serialize(to)))
}

func unified(fromName, toName, a, b string) string {
	if a == b {
		return ""
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(a),
		B:        splitLines(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  diffContext,
	})
	if err != nil {
		return ""
	}
	return out
}

// splitLines keeps the newline on every line, which difflib expects.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
