package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dominion_dao/contract"
	"dominion_dao/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/dominion.db", cfg.DBPath)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DOMINION_ADDR", ":9000")
	t.Setenv("DOMINION_DB_PATH", "/tmp/x.db")
	t.Setenv("DOMINION_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-addr", ":9100"})
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestParseConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOMINION_GENESIS_FILE=genesis.yaml\n"), 0o600))
	chdir(t, dir)
	t.Cleanup(func() { os.Unsetenv("DOMINION_GENESIS_FILE") })

	cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)
	assert.Equal(t, "genesis.yaml", cfg.GenesisFile)
}

func TestParseConfigRejectsBadDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DOMINION_SHUTDOWN_TIMEOUT", "soon")
	_, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	assert.Error(t, err)
}

func TestParseGenesisYAML(t *testing.T) {
	cfg, err := ParseGenesisYAML([]byte(`
stake_threshold: 2.5
supply_cap: 3
minter: hive:tibfox
vote_weight: flat
max_request_bps: 5000
native_asset: HIVE
`))
	require.NoError(t, err)
	assert.Equal(t, contract.FloatToAmount(2.5), cfg.StakeThreshold)
	assert.Equal(t, uint64(3), cfg.SupplyCap)
	assert.Equal(t, sdk.Address("hive:tibfox"), cfg.Minter)
	assert.Equal(t, contract.VoteWeightFlat, cfg.VoteWeight)
	assert.Equal(t, uint32(5000), cfg.MaxRequestBps)
	assert.Equal(t, sdk.AssetHive, cfg.NativeAsset)
	assert.Equal(t, "Timeless NFTs", cfg.CollectionName)
}

func TestParseGenesisYAMLRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":         "   ",
		"unknown field": "stake: 5",
		"bad weight":    "vote_weight: quadratic",
		"zero cap":      "supply_cap: 0",
		"bad asset":     "native_asset: doge",
		"bps too high":  "max_request_bps: 10001",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGenesisYAML([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadGenesisFile(t *testing.T) {
	cfg, err := LoadGenesisFile("")
	require.NoError(t, err)
	assert.Equal(t, contract.DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collection_name: Other\n"), 0o600))
	cfg, err = LoadGenesisFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Other", cfg.CollectionName)

	_, err = LoadGenesisFile(filepath.Dir(path))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
