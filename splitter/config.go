package splitter

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfig marks a malformed split configuration. It is fatal at startup;
// the agent never runs a degraded session.
var ErrConfig = errors.New("invalid split configuration")

// Duration decodes YAML duration strings like "5s" or "100ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("bad duration %q", s)
	}
	*d = Duration(v)
	return nil
}

// Kind tags a split entry.
type Kind string

const (
	// KindDoor splits when the map id changes to the target room.
	KindDoor Kind = "door"
	// KindItem splits when the target item appears in the inventory.
	KindItem Kind = "item"
	// KindEnding splits on either game ending.
	KindEnding Kind = "ending"
)

// Split is one entry of the ordered split sequence.
type Split struct {
	Kind Kind   `yaml:"kind"`
	Room uint16 `yaml:"room,omitempty"` // door: target map id
	Item string `yaml:"item,omitempty"` // item: name or decimal id

	itemID uint16 // resolved by Validate
}

// Config is the immutable per-session split configuration.
type Config struct {
	// Start enables the auto-start condition (IGT leaving zero).
	Start bool `yaml:"start"`
	// Reset enables the auto-reset condition (IGT returning to zero).
	Reset bool `yaml:"reset"`
	// PauseTicks is the number of consecutive zero-IGT-delta ticks that
	// trigger a pause. Zero disables pause detection.
	PauseTicks int `yaml:"pause_ticks"`
	// IGTCeiling caps the per-tick IGT delta; larger deltas are treated as
	// stale reads. Zero selects the default.
	IGTCeiling Duration `yaml:"igt_ceiling"`
	// Splits is the ordered split sequence.
	Splits []Split `yaml:"splits"`
}

// Load reads and validates a YAML split file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read split file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse unmarshals and validates split configuration YAML.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{Start: true}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the split sequence and resolves item references.
func (c *Config) Validate() error {
	if len(c.Splits) == 0 {
		return fmt.Errorf("%w: empty split sequence", ErrConfig)
	}
	if c.PauseTicks < 0 {
		return fmt.Errorf("%w: negative pause_ticks", ErrConfig)
	}
	for i := range c.Splits {
		sp := &c.Splits[i]
		switch sp.Kind {
		case KindDoor:
			if sp.Room == 0 {
				return fmt.Errorf("%w: split %d: door split needs a room", ErrConfig, i)
			}
		case KindItem:
			if sp.Item == "" {
				return fmt.Errorf("%w: split %d: item split needs an item", ErrConfig, i)
			}
			id, err := ResolveItem(sp.Item)
			if err != nil {
				return fmt.Errorf("%w: split %d: %v", ErrConfig, i, err)
			}
			sp.itemID = id
		case KindEnding:
			// no trigger values; the ending condition is fixed
		default:
			return fmt.Errorf("%w: split %d: unknown kind %q", ErrConfig, i, sp.Kind)
		}
	}
	return nil
}
