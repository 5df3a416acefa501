package schedule

import (
	"fmt"
	"sync"
)

// Calendar maps assigned shift labels to shift windows. It is built
// once at startup and refreshed after shift CRUD; construction fails
// when the default label has no window, so ResolveShift is total for
// the lifetime of the process.
type Calendar struct {
	mu           sync.RWMutex
	windows      map[string]ShiftWindow
	defaultLabel string
}

func NewCalendar(shifts []Shift, defaultLabel string) (*Calendar, error) {
	c := &Calendar{defaultLabel: defaultLabel}
	if err := c.Reload(shifts); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the shift table. The default label must stay
// resolvable; a reload that would break it is rejected wholesale.
func (c *Calendar) Reload(shifts []Shift) error {
	windows := make(map[string]ShiftWindow, len(shifts))
	for _, s := range shifts {
		windows[s.Label] = s.Window()
	}
	if _, ok := windows[c.defaultLabel]; !ok {
		return fmt.Errorf("%w: %q", ErrDefaultShiftMissing, c.defaultLabel)
	}

	c.mu.Lock()
	c.windows = windows
	c.mu.Unlock()
	return nil
}

// ResolveShift returns the window for an employee's assigned shift
// label. A nil or unknown label falls back to the default window; it
// never fails.
func (c *Calendar) ResolveShift(assigned *string) ShiftWindow {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if assigned != nil {
		if w, ok := c.windows[*assigned]; ok {
			return w
		}
	}
	return c.windows[c.defaultLabel]
}

// DefaultLabel returns the configured fallback shift label.
func (c *Calendar) DefaultLabel() string {
	return c.defaultLabel
}
