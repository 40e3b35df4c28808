// Package metrics records store activity. Components take a Recorder and
// default to NoopRecorder, so metrics stay optional.
package metrics

// Routine actions reported through IncRoutineAction.
const (
	ActionAdd    = "add"
	ActionToggle = "toggle"
	ActionDelete = "delete"
	ActionReset  = "reset"
)

// Fallback reasons reported through IncStoreFallback.
const (
	ReasonMissing = "missing"
	ReasonCorrupt = "corrupt"
)

// Recorder receives store events.
type Recorder interface {
	IncSessionLogged()
	IncSessionDeleted()
	SetSessionCount(n int)
	IncRoutineAction(action string)
	IncStoreFallback(record, reason string)
}

// NoopRecorder drops everything.
type NoopRecorder struct{}

func (NoopRecorder) IncSessionLogged()               {}
func (NoopRecorder) IncSessionDeleted()              {}
func (NoopRecorder) SetSessionCount(int)             {}
func (NoopRecorder) IncRoutineAction(string)         {}
func (NoopRecorder) IncStoreFallback(string, string) {}
