package repack

import (
	"log/slog"

	"curator/internal/logging"
)

// State names the phases of a single repackaging operation. Every operation
// moves forward through the sequence; an error from any phase drives
// execution backward through Unpacked and Unstaged before the failure is
// reported, so cleanup is never skipped.
type State int

const (
	StateIdle State = iota
	StateStaged
	StateLoaded
	StatePacked
	StateWritten
	StateUnpacked
	StateUnstaged
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStaged:
		return "staged"
	case StateLoaded:
		return "loaded"
	case StatePacked:
		return "packed"
	case StateWritten:
		return "written"
	case StateUnpacked:
		return "unpacked"
	case StateUnstaged:
		return "unstaged"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// opTrace records state transitions for one operation at debug level.
type opTrace struct {
	logger *slog.Logger
	state  State
}

func newOpTrace(logger *slog.Logger) *opTrace {
	return &opTrace{logger: logger, state: StateIdle}
}

func (t *opTrace) to(next State) {
	if t == nil {
		return
	}
	t.logger.Debug("operation state transition",
		logging.String("from", t.state.String()),
		logging.String("to", next.String()),
	)
	t.state = next
}
