// Package ui holds the terminal stand-ins for the portal's widgets: toasts,
// action buttons and confirmation prompts.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is published on the event bus; a Presenter renders it.
type Toast struct {
	Level   Level
	Message string
}

func Notify(bus eventbus.EventBus, level Level, message string) {
	bus.Publish(&Toast{Level: level, Message: message})
}

// Button is an action control that is disabled while its call is in flight.
type Button struct {
	Action string
	Label  string

	mu       sync.Mutex
	disabled bool
}

func NewButton(action, label string) *Button {
	return &Button{Action: action, Label: label}
}

// Acquire disables the button. It reports false when the button is already
// disabled, which blocks a duplicate submission.
func (b *Button) Acquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return false
	}
	b.disabled = true
	return true
}

func (b *Button) Disable() {
	b.mu.Lock()
	b.disabled = true
	b.mu.Unlock()
}

func (b *Button) Enable() {
	b.mu.Lock()
	b.disabled = false
	b.mu.Unlock()
}

func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

type Prompter interface {
	Prompt(ctx context.Context, question string) (string, error)
}

// LinePrompter asks on out and reads one line from in.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Prompt(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(p.out, question+" "); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// StaticPrompter answers every question with the same text.
type StaticPrompter string

func (s StaticPrompter) Prompt(context.Context, string) (string, error) {
	return string(s), nil
}

// Presenter writes toasts to out as they are published and keeps them for
// inspection.
type Presenter struct {
	out io.Writer

	mu     sync.Mutex
	toasts []Toast
	unsub  func()
}

func NewPresenter(bus eventbus.EventBus, out io.Writer) *Presenter {
	p := &Presenter{out: out}
	p.unsub = bus.Subscribe(func(t *Toast) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.toasts = append(p.toasts, *t)
		if p.out != nil {
			_, _ = fmt.Fprintf(p.out, "%s %s\n", marker(t.Level), t.Message)
		}
	})
	return p
}

func marker(l Level) string {
	switch l {
	case LevelSuccess:
		return "[ok]"
	case LevelError:
		return "[!]"
	default:
		return "[i]"
	}
}

func (p *Presenter) Toasts() []Toast {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Toast, len(p.toasts))
	copy(out, p.toasts)
	return out
}

// Last returns the most recent toast, if any.
func (p *Presenter) Last() (Toast, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.toasts) == 0 {
		return Toast{}, false
	}
	return p.toasts[len(p.toasts)-1], true
}

// HasErrors reports whether any error toast was shown.
func (p *Presenter) HasErrors() bool {
	for _, t := range p.Toasts() {
		if t.Level == LevelError {
			return true
		}
	}
	return false
}

func (p *Presenter) Close() {
	if p.unsub != nil {
		p.unsub()
	}
}
