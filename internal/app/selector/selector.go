// Package selector implements the searchable single-select control as a
// headless state machine: local substring filtering on every keystroke plus
// a debounced, deduplicated remote search when a search callback is wired.
package selector

import (
	"strings"
	"sync"
	"time"

	"github.com/vtnguyen/storeboard/pkg/debounce"
)

// Option is one selectable row.
type Option struct {
	ID          int64
	Name        string
	Subtitle    string
	Description string
}

// Key is a keyboard event the selector understands.
type Key int

const (
	KeyArrowDown Key = iota
	KeyArrowUp
	KeyEnter
	KeyEscape
)

const (
	defaultDebounce = 400 * time.Millisecond
	minSearchLength = 2
)

// Config wires a Selector.
type Config struct {
	Options  []Option
	Selected *int64

	// OnSelect receives the committed option, or nil on clear.
	OnSelect func(*Option)

	// OnSearch, when set, receives debounced remote search terms. Failures
	// of the remote search are invisible here; the caller decides whether
	// to keep stale options or clear them.
	OnSearch func(term string)

	// Debounce overrides the 400ms quiet period, mainly for tests.
	Debounce time.Duration

	Placeholder string
	Disabled    bool
}

// View is the renderable state snapshot. Loading takes precedence over
// Empty.
type View struct {
	Open        bool
	Loading     bool
	Empty       bool
	Options     []Option
	Highlighted int
	Selected    *Option
	Term        string
	Placeholder string
	CanClear    bool
}

// Selector is safe for use from UI callbacks and the debounce timer.
type Selector struct {
	mu          sync.Mutex
	options     []Option
	selectedID  *int64
	open        bool
	term        string
	highlighted int
	loading     bool
	disabled    bool
	placeholder string
	onSelect    func(*Option)
	onSearch    func(string)
	scheduler   *debounce.Scheduler
}

// New creates a selector from cfg.
func New(cfg Config) *Selector {
	delay := cfg.Debounce
	if delay <= 0 {
		delay = defaultDebounce
	}
	return &Selector{
		options:     cfg.Options,
		selectedID:  cfg.Selected,
		highlighted: -1,
		disabled:    cfg.Disabled,
		placeholder: cfg.Placeholder,
		onSelect:    cfg.OnSelect,
		onSearch:    cfg.OnSearch,
		scheduler:   debounce.New(delay),
	}
}

// SetOptions replaces the option list, typically with remote results. The
// local filter re-applies against the new list.
func (s *Selector) SetOptions(options []Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = options
	s.highlighted = -1
}

// SetLoading toggles the loading state supplied by the parent.
func (s *Selector) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// SetDisabled toggles the disabled state.
func (s *Selector) SetDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = disabled
}

// SetSelected lets the parent override the committed selection.
func (s *Selector) SetSelected(id *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Focus opens the dropdown, as focusing the input does.
func (s *Selector) Focus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.disabled {
		s.open = true
	}
}

// Input updates the search term. The local filter applies synchronously on
// the next Filtered call; the remote search is scheduled under the debounce
// window when its gates pass.
func (s *Selector) Input(term string) {
	s.mu.Lock()
	if s.disabled {
		s.mu.Unlock()
		return
	}
	s.term = term
	s.open = true
	s.highlighted = -1
	s.mu.Unlock()

	s.scheduleSearch(term)
}

// scheduleSearch arms the debounce timer when the term qualifies: length
// of at least 2, or emptied after a previous remote search (the reset
// case). Terms equal to the last dispatched one are suppressed by the
// scheduler itself.
func (s *Selector) scheduleSearch(term string) {
	if s.onSearch == nil {
		return
	}
	s.scheduler.Cancel()

	last, fired := s.scheduler.Last()
	qualifies := len(term) >= minSearchLength || (term == "" && fired && last != "")
	if !qualifies {
		return
	}
	s.scheduler.Schedule(term, s.onSearch)
}

// HandleKey applies the keyboard contract. ArrowDown and Enter open a
// closed dropdown; when open, arrows move the highlight circularly, Enter
// commits and Escape closes and resets the search state.
func (s *Selector) HandleKey(key Key) {
	s.mu.Lock()
	if s.disabled {
		s.mu.Unlock()
		return
	}

	if !s.open {
		if key == KeyArrowDown || key == KeyEnter {
			s.open = true
		}
		s.mu.Unlock()
		return
	}

	switch key {
	case KeyArrowDown:
		filtered := s.filteredLocked()
		if n := len(filtered); n > 0 {
			if s.highlighted < n-1 {
				s.highlighted++
			} else {
				s.highlighted = 0
			}
		}
		s.mu.Unlock()
	case KeyArrowUp:
		filtered := s.filteredLocked()
		if n := len(filtered); n > 0 {
			if s.highlighted > 0 {
				s.highlighted--
			} else {
				s.highlighted = n - 1
			}
		}
		s.mu.Unlock()
	case KeyEnter:
		filtered := s.filteredLocked()
		if s.highlighted >= 0 && s.highlighted < len(filtered) {
			option := filtered[s.highlighted]
			s.commitLocked(option)
			s.mu.Unlock()
			s.notifySelect(&option)
			return
		}
		s.mu.Unlock()
	case KeyEscape:
		s.open = false
		s.term = ""
		s.highlighted = -1
		s.scheduler.Reset()
		s.mu.Unlock()
	default:
		s.mu.Unlock()
	}
}

// Choose commits the option with the given id, as clicking a row does.
func (s *Selector) Choose(id int64) {
	s.mu.Lock()
	if s.disabled {
		s.mu.Unlock()
		return
	}
	for _, option := range s.filteredLocked() {
		if option.ID == id {
			chosen := option
			s.commitLocked(chosen)
			s.mu.Unlock()
			s.notifySelect(&chosen)
			return
		}
	}
	s.mu.Unlock()
}

// commitLocked applies a selection: close, clear the term and forget the
// last-searched term so a later identical search is not wrongly suppressed.
func (s *Selector) commitLocked(option Option) {
	id := option.ID
	s.selectedID = &id
	s.open = false
	s.term = ""
	s.highlighted = -1
	s.scheduler.Reset()
}

// Clear drops the committed selection and refocuses the input. It is a
// no-op while disabled or with nothing selected.
func (s *Selector) Clear() {
	s.mu.Lock()
	if s.disabled || s.selectedID == nil {
		s.mu.Unlock()
		return
	}
	s.selectedID = nil
	s.term = ""
	s.highlighted = -1
	s.open = true // refocus reopens
	s.scheduler.Reset()
	s.mu.Unlock()

	s.notifySelect(nil)
}

// ClickOutside closes the dropdown and clears the in-progress term, leaving
// the committed selection alone. An emptied term can still dispatch the
// reset search, matching Input("").
func (s *Selector) ClickOutside() {
	s.mu.Lock()
	s.open = false
	s.highlighted = -1
	changed := s.term != ""
	s.term = ""
	s.mu.Unlock()

	if changed {
		s.scheduleSearch("")
	}
}

func (s *Selector) notifySelect(option *Option) {
	if s.onSelect != nil {
		s.onSelect(option)
	}
}

// Filtered returns the options passing the local case-insensitive
// substring filter over name, subtitle and description.
func (s *Selector) Filtered() []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredLocked()
}

func (s *Selector) filteredLocked() []Option {
	if s.term == "" {
		return s.options
	}
	needle := strings.ToLower(s.term)
	var filtered []Option
	for _, option := range s.options {
		if strings.Contains(strings.ToLower(option.Name), needle) ||
			(option.Subtitle != "" && strings.Contains(strings.ToLower(option.Subtitle), needle)) ||
			(option.Description != "" && strings.Contains(strings.ToLower(option.Description), needle)) {
			filtered = append(filtered, option)
		}
	}
	return filtered
}

// Selected returns the committed option if it is present in the option
// list.
func (s *Selector) Selected() *Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *Selector) selectedLocked() *Option {
	if s.selectedID == nil {
		return nil
	}
	for _, option := range s.options {
		if option.ID == *s.selectedID {
			found := option
			return &found
		}
	}
	return nil
}

// View snapshots the renderable state.
func (s *Selector) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.filteredLocked()
	selected := s.selectedLocked()
	return View{
		Open:        s.open,
		Loading:     s.loading,
		Empty:       !s.loading && len(filtered) == 0,
		Options:     filtered,
		Highlighted: s.highlighted,
		Selected:    selected,
		Term:        s.term,
		Placeholder: s.placeholder,
		CanClear:    selected != nil && !s.disabled,
	}
}
