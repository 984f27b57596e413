// Package timerhost delivers timing actions to the external timer that owns
// run history and UI. The wire format is the LiveSplit Server line protocol.
package timerhost

import (
	"time"

	"splitwatch/splitter"
)

// Host receives the agent's timing actions and game time. The decision
// engine never blocks on a Host; failures are reported, logged and dropped.
type Host interface {
	// Apply delivers one timing action.
	Apply(a splitter.Action) error

	// SetGameTime pushes the authoritative in-game time for display.
	SetGameTime(d time.Duration) error
}
