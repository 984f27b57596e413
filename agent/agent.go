// Package agent runs the tick scheduler: one read-watch-decide pass per
// tick on a single goroutine, with back-off attach attempts while the
// emulator is gone.
package agent

import (
	"context"
	"fmt"
	"time"

	"splitwatch/splitter"
	"splitwatch/timerhost"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"github.com/caarlos0/env/v11"
)

// Attach retry cadence. The interval grows while the emulator stays gone to
// reduce pressure on /proc.
const (
	attachBackoffMin  = 500 * time.Millisecond
	attachBackoffStep = 500 * time.Millisecond
	attachBackoffMax  = 3 * time.Second
)

// Options is the runtime configuration of the agent, independent of the
// split configuration.
type Options struct {
	// Process restricts emulator discovery to one process name. Empty means
	// try every known emulator.
	Process string `env:"SPLITWATCH_PROCESS"`

	// Host and Port locate the LiveSplit Server instance.
	Host string `env:"SPLITWATCH_HOST" envDefault:"localhost"`
	Port int    `env:"SPLITWATCH_PORT" envDefault:"16834"`

	// TickInterval is the pause between read-watch-decide passes.
	TickInterval time.Duration `env:"SPLITWATCH_TICK" envDefault:"50ms"`

	// SplitFile is the path of the YAML split configuration.
	SplitFile string `env:"SPLITWATCH_SPLITS" envDefault:"splits.yaml"`
}

// OptionsFromEnv loads Options from the environment.
func OptionsFromEnv() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}
	return opts, nil
}

// Addr returns the timer host address in host:port form.
func (o Options) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// Agent owns the attach lifecycle and drives the split decision machine.
type Agent struct {
	opts    Options
	host    timerhost.Host
	machine *splitter.Machine
	attach  func() (sampler, error)
	smp     sampler
	log     *logger.Logger
}

func newAgent(cfg *splitter.Config, host timerhost.Host, opts Options, attach func() (sampler, error)) *Agent {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 50 * time.Millisecond
	}
	return &Agent{
		opts:    opts,
		host:    host,
		machine: splitter.NewMachine(cfg),
		attach:  attach,
		log:     logger.NewLogger(coloransi.Color(coloransi.ColorLimeGreen, coloransi.ColorOrange, "agent")),
	}
}

// Machine exposes the decision machine for observation (phase, game time).
func (a *Agent) Machine() *splitter.Machine {
	return a.machine
}

// Run drives ticks until ctx is cancelled. Ticks are strictly sequential;
// teardown only happens between ticks.
func (a *Agent) Run(ctx context.Context) error {
	defer func() {
		if a.smp != nil {
			a.smp.Close()
			a.smp = nil
		}
	}()

	backoff := attachBackoffMin

	for {
		if a.smp == nil {
			smp, err := a.attach()
			if err != nil {
				a.log.Debugln("Attach failed:", err)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(backoff):
				}
				backoff += attachBackoffStep
				if backoff > attachBackoffMax {
					backoff = attachBackoffMax
				}
				continue
			}
			a.smp = smp
			backoff = attachBackoffMin
			// A fresh attach is a fresh observation session
			a.machine.SessionReset()
			a.log.Infoln("Attached, session started")
		}

		a.tick()

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.opts.TickInterval):
		}
	}
}

// tick performs one read-watch-decide pass.
func (a *Agent) tick() {
	s, err := a.smp.Sample()
	if err != nil {
		// Process exited: the run is presumed abandoned. State resets but
		// no Reset action reaches the host.
		a.log.Warn("Target process exited: ", err)
		a.smp.Close()
		a.smp = nil
		a.machine.SessionReset()
		return
	}

	action := a.machine.Tick(s)
	if action != splitter.ActionNone {
		a.log.Infoln("Action:", action.String())
		if err := a.host.Apply(action); err != nil {
			a.log.Warn("Timer host: ", err)
		}
	}

	if phase := a.machine.Phase(); phase == splitter.PhaseRunning || phase == splitter.PhasePaused {
		if err := a.host.SetGameTime(a.machine.GameTime()); err != nil {
			a.log.Debugln("Timer host:", err)
		}
	}
}
