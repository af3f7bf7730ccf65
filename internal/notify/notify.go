// Package notify is the page-wide notification state: one auto-dismissing
// success notice (with optional one-shot undo) and one separately
// dismissed error banner. A single Notifier lives for the whole program
// and is reset on view navigation.
package notify

import (
	"sync"
	"time"
)

const DefaultDuration = 3 * time.Second

// Notice is a transient success message.
type Notice struct {
	Text string
	Undo func() // optional one-shot undo action
}

// Notifier holds the two user-visible channels.
type Notifier struct {
	mu      sync.Mutex
	notice  *Notice
	err     string
	timer   *time.Timer
	gen     uint64 // bumped on every notice change; stale timers check it
	expired func() // invoked when a notice auto-dismisses, for UI repaint
}

// New creates a Notifier. onExpire, if non-nil, is called after a success
// notice auto-dismisses.
func New(onExpire func()) *Notifier {
	return &Notifier{expired: onExpire}
}

// Success shows a success notice for the given duration (DefaultDuration
// when zero), replacing any notice already showing.
func (n *Notifier) Success(text string, undo func(), duration time.Duration) {
	if duration <= 0 {
		duration = DefaultDuration
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	n.notice = &Notice{Text: text, Undo: undo}
	n.gen++
	gen := n.gen
	if n.timer != nil {
		n.timer.Stop()
	}
	// Stop can miss a timer whose callback is already blocked on the
	// mutex; the generation check keeps it from clearing the new notice.
	n.timer = time.AfterFunc(duration, func() {
		n.mu.Lock()
		if n.gen != gen {
			n.mu.Unlock()
			return
		}
		n.notice = nil
		expired := n.expired
		n.mu.Unlock()
		if expired != nil {
			expired()
		}
	})
}

// Error shows the error banner. Errors do not auto-dismiss.
func (n *Notifier) Error(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = text
}

// Notice returns the current success notice, or nil.
func (n *Notifier) Notice() *Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notice
}

// Err returns the current error banner text, "" when none.
func (n *Notifier) Err() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

// TakeUndo consumes the pending undo action, dismissing the notice.
// Returns nil when there is nothing to undo.
func (n *Notifier) TakeUndo() func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.notice == nil || n.notice.Undo == nil {
		return nil
	}
	undo := n.notice.Undo
	n.notice = nil
	n.gen++
	if n.timer != nil {
		n.timer.Stop()
	}
	return undo
}

// ClearError dismisses the error banner only.
func (n *Notifier) ClearError() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = ""
}

// Clear dismisses both channels. Called on navigation.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notice = nil
	n.err = ""
	n.gen++
	if n.timer != nil {
		n.timer.Stop()
	}
}
