// Package progress defines the progress-reporter contract: begin/advance/
// finish over a fixed set of stages. The core never logs to a global
// stream — it only calls this sink.
package progress

// Stage names the four pipeline phases a Reporter is told about.
type Stage string

const (
	StageScan    Stage = "scan"
	StageDecode  Stage = "decode"
	StageResolve Stage = "resolve"
	StageAssemble Stage = "assemble"
)

// Reporter receives progress events. Implementations may discard any or
// all calls.
type Reporter interface {
	Begin(stage Stage, total int)
	Advance(stage Stage, delta int)
	Finish(stage Stage)
}

// Discard is a Reporter that ignores every event; the zero value
// Discard{} is ready to use and is the default when no reporter is
// supplied.
type Discard struct{}

func (Discard) Begin(Stage, int)    {}
func (Discard) Advance(Stage, int) {}
func (Discard) Finish(Stage)       {}
