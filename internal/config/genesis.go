package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"dominion_dao/contract"
	"dominion_dao/sdk"

	"gopkg.in/yaml.v3"
)

// Genesis is the YAML shape of the ledger's genesis parameters. Omitted fields
// keep the defaults.
type Genesis struct {
	StakeThreshold   *float64 `yaml:"stake_threshold"`
	SupplyCap        *uint64  `yaml:"supply_cap"`
	Minter           string   `yaml:"minter"`
	CollectionName   string   `yaml:"collection_name"`
	CollectionSymbol string   `yaml:"collection_symbol"`
	MaxRequestBps    *uint32  `yaml:"max_request_bps"`
	VoteWeight       string   `yaml:"vote_weight"`
	NativeAsset      string   `yaml:"native_asset"`
}

// Config merges the file over contract.DefaultConfig and validates the result.
func (g Genesis) Config() (contract.Config, error) {
	cfg := contract.DefaultConfig()
	if g.StakeThreshold != nil {
		cfg.StakeThreshold = contract.FloatToAmount(*g.StakeThreshold)
	}
	if g.SupplyCap != nil {
		cfg.SupplyCap = *g.SupplyCap
	}
	if v := strings.TrimSpace(g.Minter); v != "" {
		cfg.Minter = sdk.Address(v)
	}
	if v := strings.TrimSpace(g.CollectionName); v != "" {
		cfg.CollectionName = v
	}
	if v := strings.TrimSpace(g.CollectionSymbol); v != "" {
		cfg.CollectionSymbol = v
	}
	if g.MaxRequestBps != nil {
		cfg.MaxRequestBps = *g.MaxRequestBps
	}
	mode, ok := contract.ParseVoteWeightMode(strings.ToLower(strings.TrimSpace(g.VoteWeight)))
	if !ok {
		return contract.Config{}, fmt.Errorf("genesis: unknown vote_weight %q", g.VoteWeight)
	}
	cfg.VoteWeight = mode
	if v := strings.TrimSpace(g.NativeAsset); v != "" {
		cfg.NativeAsset = sdk.Asset(strings.ToLower(v))
	}
	if err := cfg.Validate(); err != nil {
		return contract.Config{}, fmt.Errorf("genesis: %w", err)
	}
	return cfg, nil
}

// ParseGenesisYAML decodes and validates a genesis document.
func ParseGenesisYAML(data []byte) (contract.Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return contract.Config{}, fmt.Errorf("genesis: payload is empty")
	}
	var g Genesis
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&g); err != nil {
		return contract.Config{}, fmt.Errorf("genesis: decode: %w", err)
	}
	return g.Config()
}

// LoadGenesisFile reads the genesis file; an empty path yields the defaults.
func LoadGenesisFile(path string) (contract.Config, error) {
	if strings.TrimSpace(path) == "" {
		return contract.DefaultConfig(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return contract.Config{}, fmt.Errorf("genesis: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return contract.Config{}, fmt.Errorf("genesis: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return contract.Config{}, fmt.Errorf("genesis: read %s: %w", path, err)
	}
	cfg, err := ParseGenesisYAML(data)
	if err != nil {
		return contract.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
