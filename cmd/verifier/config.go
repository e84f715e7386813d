package verifier

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// verifierConfig is the mapstructure-tagged shape an optional --config file
// unmarshals into, the same viper.SetConfigFile/ReadInConfig/Unmarshal
// sequence generate_beacon_data.go uses to load its own Config. It carries
// data chainspec.Mainnet/Minimal/Gnosis deliberately leave zero (the genesis
// validators root is network data, not a schedule constant) plus tuning for
// the trust-state ring the CLI would otherwise hardcode.
type verifierConfig struct {
	GenesisValidatorsRoot string `mapstructure:"genesisValidatorsRoot"`
	BlockRingCapacity     int    `mapstructure:"blockRingCapacity"`
	CommitteeWindow       int    `mapstructure:"committeeWindow"`
}

const (
	defaultBlockRingCapacity = 64
	defaultCommitteeWindow   = 8
)

// loadConfig unmarshals whatever initConfig already read into viper over
// the ring/window defaults above (the empty case — no --config given —
// leaves those defaults and an empty genesis root, which genesisRoot
// handles).
func loadConfig() (verifierConfig, error) {
	cfg := verifierConfig{
		BlockRingCapacity: defaultBlockRingCapacity,
		CommitteeWindow:   defaultCommitteeWindow,
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return verifierConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// genesisRoot decodes the configured hex root, if any. An empty string
// means "leave the chain spec's zero default alone" rather than an error.
func (c verifierConfig) genesisRoot() ([32]byte, error) {
	var out [32]byte
	if c.GenesisValidatorsRoot == "" {
		return out, nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(c.GenesisValidatorsRoot, "0x"))
	if err != nil {
		return out, fmt.Errorf("genesisValidatorsRoot: %w", err)
	}
	if len(b) != 32 {
		return out, fmt.Errorf("genesisValidatorsRoot: want 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
