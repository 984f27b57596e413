package splitter

// Action is the single timing action a tick may emit toward the host timer.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionSplit
	ActionPause
	ActionResume
	ActionReset
	// ActionFinish is the final split of the configured sequence. The host
	// records it as a split; the machine additionally stops evaluating.
	ActionFinish
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionStart:
		return "start"
	case ActionSplit:
		return "split"
	case ActionPause:
		return "pause"
	case ActionResume:
		return "resume"
	case ActionReset:
		return "reset"
	case ActionFinish:
		return "finish"
	}
	return "unknown"
}
