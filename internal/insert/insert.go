// Package insert delivers a chosen glyph to the clipboard and, when allowed,
// to the tmux pane that opened the popup.
package insert

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
	"github.com/atomicstack/tmux-emoji-popup/internal/tmux"
)

var (
	writeClipboard = clipboard.WriteAll
	paneExists     = tmux.PaneExists
	sendText       = tmux.SendText
)

// PermissionError reports that text could not be placed into the target
// pane. Delivery degrades to the clipboard when it occurs.
type PermissionError struct {
	Target string
	Err    error
}

func (e *PermissionError) Error() string {
	target := e.Target
	if target == "" {
		target = "(none)"
	}
	if e.Err == nil {
		return fmt.Sprintf("cannot insert into pane %s", target)
	}
	return fmt.Sprintf("cannot insert into pane %s: %v", target, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// Outcome describes what a delivery achieved.
type Outcome struct {
	Text         string
	Copied       bool
	Inserted     bool
	ClipboardErr error
	InsertErr    error
}

// Fallback reports that insertion was attempted and failed.
func (o Outcome) Fallback() bool {
	return o.InsertErr != nil
}

// Err is non-nil only when the text reached neither destination.
func (o Outcome) Err() error {
	if o.Copied || o.Inserted {
		return nil
	}
	if o.ClipboardErr != nil {
		return o.ClipboardErr
	}
	return o.InsertErr
}

// Deliverer sends text to the clipboard and an optional pane.
type Deliverer struct {
	Socket string
	Target string
	Insert bool
}

// New returns a deliverer for target. Insertion is skipped when insert is
// false or target is blank.
func New(socket, target string, insert bool) *Deliverer {
	return &Deliverer{Socket: socket, Target: strings.TrimSpace(target), Insert: insert}
}

// Deliver writes text to the clipboard, then inserts it into the target
// pane. Failures are recorded on the outcome, never returned.
func (d *Deliverer) Deliver(ctx context.Context, text string) Outcome {
	out := Outcome{Text: text}
	if text == "" {
		return out
	}
	if err := writeClipboard(text); err != nil {
		out.ClipboardErr = err
		logging.Error(fmt.Errorf("clipboard: %w", err))
	} else {
		out.Copied = true
	}
	events.Insert.Clipboard(text, out.ClipboardErr)

	if d == nil || !d.Insert || d.Target == "" {
		return out
	}
	if err := ctx.Err(); err != nil {
		out.InsertErr = &PermissionError{Target: d.Target, Err: err}
		events.Insert.Fallback(d.Target, out.InsertErr)
		return out
	}
	if err := d.insert(text); err != nil {
		out.InsertErr = err
		logging.Error(err)
		events.Insert.Fallback(d.Target, err)
		return out
	}
	out.Inserted = true
	events.Insert.Pane(d.Target, text)
	return out
}

func (d *Deliverer) insert(text string) error {
	ok, err := paneExists(d.Socket, d.Target)
	if err != nil {
		return &PermissionError{Target: d.Target, Err: err}
	}
	if !ok {
		return &PermissionError{Target: d.Target, Err: &tmux.ErrNoPane{Target: d.Target}}
	}
	if err := sendText(d.Socket, d.Target, text); err != nil {
		return &PermissionError{Target: d.Target, Err: err}
	}
	return nil
}
