// cmd/sim/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/opd-ai/go-collide/pkg/config"
	"github.com/opd-ai/go-collide/pkg/engine"
	"github.com/opd-ai/go-collide/pkg/event"
	"github.com/opd-ai/go-collide/pkg/logging"
	"github.com/opd-ai/go-collide/pkg/physics"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "", "Path to configuration file (JSON or YAML)")
	createDefault := flag.Bool("default", false, "Create default configuration file and exit")
	bodyCount := flag.Int("bodies", 64, "Number of random bodies to simulate")
	tickCount := flag.Int("ticks", 600, "Number of simulation ticks to run")
	seed := flag.Int64("seed", 1, "Random seed for body placement")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		path := *configPath
		if path == "" {
			path = "config.json"
		}
		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", path,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", path,
		)
		return
	}

	// Load configuration: file if given, otherwise environment over
	// defaults
	var simConfig *config.SimConfig
	var err error
	if *configPath != "" {
		simConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	} else {
		simConfig, err = config.LoadConfigFromEnv()
		if err != nil {
			logger.Error(ctx, "Failed to load environment configuration", err)
			os.Exit(1)
		}
	}

	system := engine.NewSystem(simConfig)

	collisions := 0
	system.EventBus.Subscribe(event.BodyCollision, func(e event.Event) {
		collisions++
	})

	bodies := spawnBodies(simConfig, *bodyCount, *seed)
	logger.Info(ctx, "Starting simulation",
		"bodies", len(bodies),
		"ticks", *tickCount,
		"world_size", simConfig.WorldSize,
		"time_step", simConfig.TimeStep,
	)

	for tick := uint64(0); tick < uint64(*tickCount); tick++ {
		tickCtx := logging.WithTick(ctx, tick)
		step(tickCtx, system, bodies, simConfig.TimeStep, logger)
	}

	logger.Info(ctx, "Simulation finished",
		"ticks", *tickCount,
		"collisions", collisions,
	)
}

// step advances the simulation one tick: integrate positions, rebuild
// the spatial index, then detect and resolve every colliding pair
func step(ctx context.Context, system *engine.System, bodies []*physics.Body, dt float64, logger *logging.Logger) {
	for _, body := range bodies {
		body.Position = body.Position.Add(body.Velocity.Scale(dt))
	}

	system.Rebuild(ctx, bodies)

	for _, body := range bodies {
		nearby := system.QueryNearby(body.Position, body.BoundingRadius()*4)
		for _, pair := range system.FindCollisions(body, nearby) {
			// Each pair is seen twice, once from each side; resolve it
			// only from the lower ID to avoid double impulses
			if pair.BodyA.ID > pair.BodyB.ID {
				continue
			}
			resp, err := physics.Resolve(pair.BodyA, pair.BodyB, pair.Result)
			if err != nil {
				logger.Warn(ctx, "skipping unresolvable pair",
					"body_a", pair.BodyA.ID,
					"body_b", pair.BodyB.ID,
					"error", err.Error(),
				)
				continue
			}
			physics.ApplyImpulse(pair.BodyB, resp.LinearImpulse, resp.AngularImpulseB)
			physics.ApplyImpulse(pair.BodyA, resp.LinearImpulse.Negate(), resp.AngularImpulseA)
			physics.SeparateBodies(pair.BodyA, pair.BodyB, pair.Result)
		}
	}
}

// spawnBodies scatters dynamic spheres through the inner half of the
// world volume with random velocities
func spawnBodies(cfg *config.SimConfig, count int, seed int64) []*physics.Body {
	rng := rand.New(rand.NewSource(seed))
	half := cfg.WorldSize / 4

	bodies := make([]*physics.Body, 0, count)
	for i := 0; i < count; i++ {
		body := physics.NewBody(
			fmt.Sprintf("body-%04d", i),
			physics.Vector3{
				X: rng.Float64()*2*half - half,
				Y: rng.Float64()*2*half - half,
				Z: rng.Float64()*2*half - half,
			},
			1+rng.Float64()*9,
			1+rng.Float64()*2,
		)
		body.Velocity = physics.Vector3{
			X: rng.Float64()*20 - 10,
			Y: rng.Float64()*20 - 10,
			Z: rng.Float64()*20 - 10,
		}
		body.Restitution = cfg.Materials.Restitution
		body.Friction = cfg.Materials.Friction
		bodies = append(bodies, body)
	}
	return bodies
}
