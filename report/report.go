// Package report is the user-visible error channel: a modal popup with a
// title and a free-text message. Reporters are used for reporting only and
// never influence control flow.
package report

import (
	"sync"

	"go.uber.org/zap"
)

// Reporter shows a popup to the user.
type Reporter interface {
	Popup(title, message string)
}

// Func adapts a function to Reporter.
type Func func(title, message string)

func (f Func) Popup(title, message string) { f(title, message) }

// Discard drops every popup.
var Discard Reporter = Func(func(string, string) {})

type logReporter struct {
	logger *zap.Logger
}

// Log returns a reporter that writes popups to logger at warn level.
func Log(logger *zap.Logger) Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logReporter{logger: logger}
}

func (r logReporter) Popup(title, message string) {
	r.logger.Warn("popup", zap.String("title", title), zap.String("message", message))
}

// Multi fans a popup out to every reporter in order.
func Multi(reporters ...Reporter) Reporter {
	out := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

type multi []Reporter

func (m multi) Popup(title, message string) {
	for _, r := range m {
		r.Popup(title, message)
	}
}

// Popup is one reported message.
type Popup struct {
	Title   string
	Message string
}

// Recorder collects popups in order. Safe for concurrent use.
type Recorder struct {
	popups []Popup
	mu     sync.Mutex
}

func (r *Recorder) Popup(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.popups = append(r.popups, Popup{Title: title, Message: message})
}

// Popups returns a copy of the recorded popups.
func (r *Recorder) Popups() []Popup {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Popup(nil), r.popups...)
}

// Len returns the number of recorded popups.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.popups)
}

// Reset drops the recorded popups.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.popups = nil
}
