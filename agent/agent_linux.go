//go:build linux

package agent

import (
	"splitwatch/emucore"
	"splitwatch/splitter"
	"splitwatch/timerhost"
)

// New builds an agent that attaches to a real emulator process.
func New(cfg *splitter.Config, host timerhost.Host, opts Options) *Agent {
	return newAgent(cfg, host, opts, func() (sampler, error) {
		emu, err := emucore.Attach(opts.Process, GameSignature())
		if err != nil {
			return nil, err
		}
		return &emuSampler{emu: emu}, nil
	})
}
