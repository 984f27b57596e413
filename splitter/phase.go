package splitter

// Phase is the run phase of the split decision state machine.
type Phase int

const (
	PhaseNotRunning Phase = iota
	PhaseRunning
	PhasePaused
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotRunning:
		return "not-running"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}
