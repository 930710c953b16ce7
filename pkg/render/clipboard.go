package render

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
)

// CopiedResetDelay is how long a "copied" indicator stays on.
const CopiedResetDelay = 2 * time.Second

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(text string) error
}

// OSC52Clipboard copies through the terminal with an OSC 52 escape sequence.
type OSC52Clipboard struct {
	w io.Writer
}

func NewOSC52Clipboard(w io.Writer) *OSC52Clipboard {
	return &OSC52Clipboard{w: w}
}

func (c *OSC52Clipboard) WriteText(text string) error {
	if _, err := osc52.New(text).WriteTo(c.w); err != nil {
		return fmt.Errorf("failed to write clipboard sequence: %w", err)
	}
	return nil
}

// Copy writes text to cb and marks label on ind. Failures are logged and
// otherwise ignored.
func Copy(cb Clipboard, ind *CopyIndicator, logger *slog.Logger, label, text string) bool {
	if err := cb.WriteText(text); err != nil {
		logger.Error("failed to copy", "label", label, "error", err)
		return false
	}
	if ind != nil {
		ind.Mark(label)
	}
	return true
}

// CopyIndicator remembers the last copied label until a timer clears it.
type CopyIndicator struct {
	mu    sync.Mutex
	delay time.Duration
	label string
	gen   int
	timer *time.Timer
}

func NewCopyIndicator(delay time.Duration) *CopyIndicator {
	return &CopyIndicator{delay: delay}
}

// Mark shows label and restarts the reset timer.
func (c *CopyIndicator) Mark(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.label = label
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen == gen {
			c.label = ""
		}
	})
}

// Label returns the label currently shown, or "".
func (c *CopyIndicator) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// Copied reports whether label is currently shown.
func (c *CopyIndicator) Copied(label string) bool {
	return label != "" && c.Label() == label
}

// CopyAllLabel marks the "copy all" action.
const CopyAllLabel = "all"

// EntryLabel marks the copy action of extracted_data entry i.
func EntryLabel(i int) string {
	return fmt.Sprintf("data-%d", i)
}
