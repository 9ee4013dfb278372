package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/runfor/internal/timespec"
)

// Defaults mirrors the optional YAML defaults file. Every field is optional;
// explicit command-line flags always win over anything set here.
type Defaults struct {
	Signal         string `yaml:"signal"`
	KillAfter      string `yaml:"kill-after"`
	PreserveStatus *bool  `yaml:"preserve-status"`
	Verbose        *bool  `yaml:"verbose"`
}

// LoadDefaults reads and validates a defaults file. An empty file yields an
// empty Defaults value.
func LoadDefaults(path string) (*Defaults, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open defaults file: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	var doc Defaults
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Defaults{}, nil
		}
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &doc, nil
}

// FromEnv builds defaults from the RUNFOR_SIGNAL and RUNFOR_KILL_AFTER
// environment variables. Values from a defaults file overlay these.
func FromEnv() Defaults {
	return Defaults{
		Signal:    os.Getenv("RUNFOR_SIGNAL"),
		KillAfter: os.Getenv("RUNFOR_KILL_AFTER"),
	}
}

// Merge overlays every set field of other onto d and returns the result.
func (d Defaults) Merge(other Defaults) Defaults {
	if other.Signal != "" {
		d.Signal = other.Signal
	}
	if other.KillAfter != "" {
		d.KillAfter = other.KillAfter
	}
	if other.PreserveStatus != nil {
		d.PreserveStatus = other.PreserveStatus
	}
	if other.Verbose != nil {
		d.Verbose = other.Verbose
	}
	return d
}

// Validate checks that every populated field parses.
func (d *Defaults) Validate() error {
	if d.KillAfter != "" {
		if _, err := timespec.Parse(d.KillAfter); err != nil {
			return fmt.Errorf("kill-after: %w", err)
		}
	}
	return nil
}

// KillAfterDuration parses the kill-after field; zero when unset.
func (d *Defaults) KillAfterDuration() (time.Duration, error) {
	if d.KillAfter == "" {
		return 0, nil
	}
	return timespec.Parse(d.KillAfter)
}
