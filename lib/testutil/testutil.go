package testutil

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// Event is a single call recorded by TelemetryRecorder.
type Event struct {
	Kind string
	ID   string
}

// TelemetryRecorder implements telemetry.API by forwarding every report to
// t.Logf and remembering it for assertions.
type TelemetryRecorder struct {
	t      testing.TB
	mutex  sync.Mutex
	events []Event
}

func NewTelemetryRecorder(t testing.TB) *TelemetryRecorder {
	return &TelemetryRecorder{t: t}
}

func (r *TelemetryRecorder) record(kind, id string, params []any) {
	r.mutex.Lock()
	r.events = append(r.events, Event{Kind: kind, ID: id})
	r.mutex.Unlock()

	rendered := make([]string, len(params))
	for i, p := range params {
		rendered[i] = fmt.Sprint(p)
	}
	r.t.Logf("[%s] %s %s", kind, id, strings.Join(rendered, " "))
}

func (r *TelemetryRecorder) ReportBroken(id string, params ...any) {
	r.record("broken", id, params)
}

func (r *TelemetryRecorder) ReportWarning(id string, params ...any) {
	r.record("warning", id, params)
}

func (r *TelemetryRecorder) ReportDebug(msg string, params ...any) {
	r.record("debug", msg, params)
}

func (r *TelemetryRecorder) ReportCount(id string, count int64) {
	r.record("count", id, []any{count})
}

// Events returns the recorded events of the given kind.
func (r *TelemetryRecorder) Events(kind string) []Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := []Event{}
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
