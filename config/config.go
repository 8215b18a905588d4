// ABOUTME: EngineConfig: TOML-backed tunables for timing and tolerance knobs the core otherwise hardcodes
// ABOUTME: Mirrors the teacher's load-with-fallback-to-defaults pattern; values here tune the engine, never its semantics

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EngineConfig holds tunables for the generation pipeline: tolerance bands,
// iteration caps, and collaborator timeouts. None of these change what the
// scoring kernel computes. The CLI driver reads OracleTimeoutSeconds,
// CatalogRoot and LibraryRootID. MinuteToleranceRatio, MinIterationFloor and
// DiscoveryPerTrackTimeoutSeconds are loaded and saved but not read by the
// engine: the selection loop and discovery use their own constants, whose
// values equal the defaults below.
type EngineConfig struct {
	// MinuteToleranceRatio is the ±band around a minute-mode target duration.
	MinuteToleranceRatio float64 `toml:"minute_tolerance_ratio"`

	// MinIterationFloor is the lower bound on the selection loop's
	// iteration cap (max(targetTracks*2, this)).
	MinIterationFloor int `toml:"min_iteration_floor"`

	// OracleTimeoutSeconds bounds a single oracle request (strategy or
	// refinement).
	OracleTimeoutSeconds int `toml:"oracle_timeout_seconds"`

	// DiscoveryPerTrackTimeoutSeconds bounds a single discovery lookup or
	// explanation call.
	DiscoveryPerTrackTimeoutSeconds int `toml:"discovery_per_track_timeout_seconds"`

	// CatalogRoot is the default file-backed catalog root when no
	// Postgres DSN is configured.
	CatalogRoot string `toml:"catalog_root"`

	// LibraryRootID scopes which catalog slice is loaded.
	LibraryRootID string `toml:"library_root_id"`
}

// OracleTimeout and DiscoveryPerTrackTimeout convert the stored integer
// seconds into durations for collaborator wiring.
func (c EngineConfig) OracleTimeout() time.Duration {
	return time.Duration(c.OracleTimeoutSeconds) * time.Second
}

func (c EngineConfig) DiscoveryPerTrackTimeout() time.Duration {
	return time.Duration(c.DiscoveryPerTrackTimeoutSeconds) * time.Second
}

// DefaultConfig returns the engine's default tunables, per spec §4.4/§4.5's
// fixed constants.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		MinuteToleranceRatio:            0.05,
		MinIterationFloor:               1000,
		OracleTimeoutSeconds:            10,
		DiscoveryPerTrackTimeoutSeconds: 20,
		CatalogRoot:                     "./catalog",
		LibraryRootID:                   "default",
	}
}

// GetConfigPath mirrors the teacher's current-directory-then-home-dir
// lookup.
func GetConfigPath() string {
	if _, err := os.Stat("./playlistcraft.toml"); err == nil {
		return "./playlistcraft.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./playlistcraft.toml"
	}

	return filepath.Join(home, ".config", "playlistcraft", "config.toml")
}

// LoadConfig loads EngineConfig from path, falling back to DefaultConfig
// when the file is absent.
func LoadConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path as TOML, creating parent directories as
// needed.
func SaveConfig(path string, cfg EngineConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
