// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-collide/pkg/physics"
	"github.com/opd-ai/go-collide/pkg/validation"
)

// SimConfig contains configuration for a collision simulation
type SimConfig struct {
	// WorldSize is the edge length in meters of the cubic world volume,
	// centered on the origin, that the spatial index covers
	WorldSize float64 `json:"worldSize" yaml:"worldSize"`

	// TimeStep is the simulation tick length in seconds
	TimeStep float64 `json:"timeStep" yaml:"timeStep"`

	Octree    OctreeConfig   `json:"octree" yaml:"octree"`
	Materials MaterialConfig `json:"materials" yaml:"materials"`
}

// OctreeConfig contains spatial index subdivision parameters
type OctreeConfig struct {
	// MaxDepth caps subdivision; nodes at this depth accumulate bodies
	// without splitting
	MaxDepth int `json:"maxDepth" yaml:"maxDepth"`

	// MaxObjects is the per-node capacity that triggers subdivision
	MaxObjects int `json:"maxObjects" yaml:"maxObjects"`
}

// MaterialConfig contains default material coefficients applied to
// bodies that do not set their own
type MaterialConfig struct {
	Restitution float64 `json:"restitution" yaml:"restitution"`
	Friction    float64 `json:"friction" yaml:"friction"`
}

// LoadConfig loads a configuration from a JSON or YAML file, chosen by
// file extension
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves a configuration to a JSON or YAML file, chosen by
// file extension
func SaveConfig(config *SimConfig, path string) error {
	var data []byte
	var err error
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		WorldSize: 10000,
		TimeStep:  1.0 / 60.0,
		Octree: OctreeConfig{
			MaxDepth:   5,
			MaxObjects: 8,
		},
		Materials: MaterialConfig{
			Restitution: physics.DefaultRestitution,
			Friction:    physics.DefaultFriction,
		},
	}
}

// Validate checks the configuration for values the engine cannot run
// with
func (c *SimConfig) Validate() error {
	if c.WorldSize <= 0 {
		return fmt.Errorf("world size must be positive, got %v", c.WorldSize)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("time step must be positive, got %v", c.TimeStep)
	}
	if err := validation.ValidateOctreeParams(c.Octree.MaxDepth, c.Octree.MaxObjects); err != nil {
		return err
	}
	if c.Materials.Restitution < 0 || c.Materials.Restitution > 1 {
		return fmt.Errorf("default restitution %v outside [0, 1]", c.Materials.Restitution)
	}
	if c.Materials.Friction < 0 || c.Materials.Friction > 1 {
		return fmt.Errorf("default friction %v outside [0, 1]", c.Materials.Friction)
	}
	return nil
}

// WorldBounds returns the world volume as an axis-aligned box centered
// on the origin
func (c *SimConfig) WorldBounds() physics.AABB {
	half := c.WorldSize / 2
	return physics.AABB{
		Min: physics.Vector3{X: -half, Y: -half, Z: -half},
		Max: physics.Vector3{X: half, Y: half, Z: half},
	}
}
