//go:build linux

// Command splitwatch watches a PS1 emulator's memory and drives a LiveSplit
// Server with start, split, pause and reset signals.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"splitwatch/agent"
	"splitwatch/splitter"
	"splitwatch/timerhost"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts, err := agent.OptionsFromEnv()

	cmd := &cobra.Command{
		Use:   "splitwatch",
		Short: "Autosplitter agent for a LiveSplit Server",
		Long: `splitwatch attaches to a running PS1 emulator, observes the game's
memory once per tick and sends timing actions (start, split, pause, resume,
reset) plus in-game time to a LiveSplit Server instance.

The split sequence is read from a YAML file:

  start: true
  splits:
    - {kind: item, item: show_stage_key}
    - {kind: door, room: 42}
    - {kind: ending}`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err != nil {
				return err
			}
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SplitFile, "splits", opts.SplitFile, "path to the YAML split file")
	cmd.Flags().StringVar(&opts.Host, "host", opts.Host, "LiveSplit Server host")
	cmd.Flags().IntVar(&opts.Port, "port", opts.Port, "LiveSplit Server port")
	cmd.Flags().StringVar(&opts.Process, "process", opts.Process, "emulator process name (default: autodetect)")
	cmd.Flags().DurationVar(&opts.TickInterval, "tick", opts.TickInterval, "interval between evaluation passes")

	return cmd
}

func run(cmd *cobra.Command, opts agent.Options) error {
	cfg, err := splitter.Load(opts.SplitFile)
	if err != nil {
		return err
	}

	if opts.TickInterval < 10*time.Millisecond {
		return fmt.Errorf("tick interval %s too short", opts.TickInterval)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := timerhost.NewClient(opts.Addr())
	defer host.Close()

	return agent.New(cfg, host, opts).Run(ctx)
}
