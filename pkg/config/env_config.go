// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names recognized by LoadConfigFromEnv. Unset
// variables fall back to the packaged defaults, so a bare environment
// yields DefaultConfig.
const (
	EnvWorldSize        = "COLLIDE_WORLD_SIZE"
	EnvTimeStep         = "COLLIDE_TIME_STEP"
	EnvOctreeMaxDepth   = "COLLIDE_OCTREE_MAX_DEPTH"
	EnvOctreeMaxObjects = "COLLIDE_OCTREE_MAX_OBJECTS"
	EnvRestitution      = "COLLIDE_DEFAULT_RESTITUTION"
	EnvFriction         = "COLLIDE_DEFAULT_FRICTION"
)

// LoadConfigFromEnv builds a simulation config from environment
// variables layered over the defaults. Malformed or out-of-range
// values are errors rather than silent fallbacks.
func LoadConfigFromEnv() (*SimConfig, error) {
	config := DefaultConfig()

	var err error
	if config.WorldSize, err = getEnvFloat(EnvWorldSize, config.WorldSize); err != nil {
		return nil, err
	}
	if config.TimeStep, err = getEnvFloat(EnvTimeStep, config.TimeStep); err != nil {
		return nil, err
	}
	if config.Octree.MaxDepth, err = getEnvInt(EnvOctreeMaxDepth, config.Octree.MaxDepth); err != nil {
		return nil, err
	}
	if config.Octree.MaxObjects, err = getEnvInt(EnvOctreeMaxObjects, config.Octree.MaxObjects); err != nil {
		return nil, err
	}
	if config.Materials.Restitution, err = getEnvFloat(EnvRestitution, config.Materials.Restitution); err != nil {
		return nil, err
	}
	if config.Materials.Friction, err = getEnvFloat(EnvFriction, config.Materials.Friction); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("environment config invalid: %w", err)
	}
	return config, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: cannot parse %q as float: %w", key, raw, err)
	}
	return value, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: cannot parse %q as int: %w", key, raw, err)
	}
	return value, nil
}
