// Package persist holds the save/load strategies used by the game engines.
// The engines never encode anything themselves: they hand a snapshot to a
// Strategy and ask it to decode one back.
package persist

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var (
	ErrChecksumMismatch   = errors.New("persist: checksum mismatch")
	ErrUnknownStrategy    = errors.New("persist: unknown strategy")
	ErrUnsupportedVersion = errors.New("persist: unsupported envelope version")
)

// Strategy saves and loads game states. state is the value to encode;
// into is a pointer to the value to decode into, which stands for the
// type of state being loaded.
type Strategy interface {
	SaveState(dst io.Writer, state any) error
	LoadState(src io.Reader, into any) error
}

// Default is the strategy engines use when none is supplied.
var Default Strategy = YAML{}

// FromName returns the strategy registered under name. The empty name
// selects Default.
func FromName(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "":
		return Default, nil
	case "yaml":
		return YAML{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

const envelopeVersion = 1

type envelope struct {
	Version  int    `yaml:"version"`
	Checksum uint64 `yaml:"checksum"`
	Payload  string `yaml:"payload"`
}

// YAML writes a YAML document wrapping the YAML encoding of the state
// together with an xxhash checksum of it.
type YAML struct{}

func (YAML) SaveState(dst io.Writer, state any) error {
	payload, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	env := envelope{
		Version:  envelopeVersion,
		Checksum: xxhash.Sum64(payload),
		Payload:  string(payload),
	}
	enc := yaml.NewEncoder(dst)
	enc.SetIndent(2)
	if err := enc.Encode(env); err != nil {
		enc.Close()
		return fmt.Errorf("writing envelope: %w", err)
	}
	log.Debug().Int("payload-bytes", len(payload)).Uint64("checksum", env.Checksum).Msg("saved state")
	return enc.Close()
}

func (YAML) LoadState(src io.Reader, into any) error {
	var env envelope
	if err := yaml.NewDecoder(src).Decode(&env); err != nil {
		return fmt.Errorf("reading envelope: %w", err)
	}
	if env.Version != envelopeVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if sum := xxhash.Sum64([]byte(env.Payload)); sum != env.Checksum {
		return fmt.Errorf("%w: have %x, want %x", ErrChecksumMismatch, sum, env.Checksum)
	}
	if err := yaml.Unmarshal([]byte(env.Payload), into); err != nil {
		return fmt.Errorf("decoding state: %w", err)
	}
	log.Debug().Uint64("checksum", env.Checksum).Msg("loaded state")
	return nil
}
