// pkg/engine/system.go
package engine

import (
	"context"

	"github.com/opd-ai/go-collide/pkg/config"
	"github.com/opd-ai/go-collide/pkg/event"
	"github.com/opd-ai/go-collide/pkg/logging"
	"github.com/opd-ai/go-collide/pkg/physics"
	"github.com/opd-ai/go-collide/pkg/validation"
)

// System is the collision engine facade. It owns exactly one spatial
// index at a time and orchestrates broad-phase rebuilds, narrow-phase
// pair checks, sweep checks and nearby-body queries.
//
// The system is single-threaded by design: the orchestrator owns the
// tick boundary and must call Rebuild before any query within the same
// tick. There is no internal locking; callers needing parallel
// resolution must partition non-overlapping pairs themselves.
type System struct {
	// EventBus publishes BodyCollision, SweepImpact and OctreeRebuilt
	// events as a side channel; return values remain the primary
	// contract
	EventBus *event.Bus

	config *config.SimConfig
	bounds physics.AABB
	octree *physics.Octree
	logger *logging.Logger
}

// CollisionPair groups a detected intersection with its two bodies.
// Produced by FindCollisions, consumed by the orchestrator's damage and
// response layer.
type CollisionPair struct {
	BodyA  *physics.Body
	BodyB  *physics.Body
	Result *physics.CollisionResult
}

// NewSystem creates a collision system over the configured world volume
func NewSystem(cfg *config.SimConfig) *System {
	return &System{
		EventBus: event.NewEventBus(),
		config:   cfg,
		bounds:   cfg.WorldBounds(),
		logger:   logging.NewLogger(),
	}
}

// WorldBounds returns the volume covered by the spatial index
func (s *System) WorldBounds() physics.AABB {
	return s.bounds
}

// Rebuild discards the previous spatial index and constructs a fresh
// one over the world bounds, inserting every body with collision
// enabled. The new tree replaces the old reference wholesale, so any
// query results still held from the previous tick keep pointing at a
// consistent (if stale) tree. Bodies failing validation are logged and
// skipped rather than failing the tick.
func (s *System) Rebuild(ctx context.Context, bodies []*physics.Body) {
	octree := physics.NewOctree(s.bounds, s.config.Octree.MaxDepth, s.config.Octree.MaxObjects)

	inserted := 0
	for _, body := range bodies {
		if body == nil || !body.CollisionEnabled {
			continue
		}
		if err := validation.ValidateBody(body); err != nil {
			s.logger.Warn(ctx, "skipping invalid body", "error", err.Error())
			continue
		}
		octree.Insert(body)
		inserted++
	}

	s.octree = octree
	s.logger.Debug(ctx, "spatial index rebuilt", "bodies", inserted)
	s.EventBus.Publish(event.NewRebuildEvent(s, inserted))
}

// CheckCollision runs the narrow phase for one body pair, dispatching
// on the pair's shape variants. Sphere and box pairs use their
// dedicated routines; every other variant (capsule, compound, mixed)
// falls back to a bounding-sphere test — an explicit decision here, not
// a silent assumption. Returns nil when the bodies do not collide. The
// result normal always points from bodyA toward bodyB.
func (s *System) CheckCollision(bodyA, bodyB *physics.Body) *physics.CollisionResult {
	shapeA := shapeOf(bodyA)
	shapeB := shapeOf(bodyB)

	switch a := shapeA.(type) {
	case physics.Sphere:
		switch b := shapeB.(type) {
		case physics.Sphere:
			return physics.DetectSphereSphere(
				worldPoint(bodyA, a.LocalPosition), a.Radius,
				worldPoint(bodyB, b.LocalPosition), b.Radius)
		case physics.Box:
			result := physics.DetectSphereBox(
				worldPoint(bodyA, a.LocalPosition), a.Radius, worldBox(bodyB, b))
			if result != nil {
				// DetectSphereBox points the normal from the box toward
				// the sphere; flip it to keep the A-to-B convention
				result.Normal = result.Normal.Negate()
			}
			return result
		}
	case physics.Box:
		switch b := shapeB.(type) {
		case physics.Sphere:
			return physics.DetectSphereBox(
				worldPoint(bodyB, b.LocalPosition), b.Radius, worldBox(bodyA, a))
		case physics.Box:
			return physics.DetectBoxBox(worldBox(bodyA, a), worldBox(bodyB, b))
		}
	}

	// Bounding-sphere fallback for variants without a dedicated routine
	s.logger.Debug(context.Background(), "shape pair using bounding-sphere fallback",
		"body_a", bodyA.ID,
		"body_b", bodyB.ID,
	)
	centerA, radiusA := boundingSphereWorld(bodyA, shapeA)
	centerB, radiusB := boundingSphereWorld(bodyB, shapeB)
	return physics.DetectSphereSphere(centerA, radiusA, centerB, radiusB)
}

// CheckSweep runs continuous collision detection for a body moving from
// startPos to endPos against a static body, catching tunneling through
// thin targets at high velocity. Publishes a SweepImpact event on a
// hit.
func (s *System) CheckSweep(body *physics.Body, startPos, endPos physics.Vector3, staticBody *physics.Body) *physics.CollisionResult {
	result := physics.SweepSphereSphere(
		startPos, endPos, body.BoundingRadius(),
		staticBody.Position, staticBody.BoundingRadius())
	if result != nil {
		s.EventBus.Publish(event.NewSweepEvent(s, body.ID, staticBody.ID, result.TimeOfImpact))
	}
	return result
}

// FindCollisions scans the candidate bodies for intersections with the
// given body. Self and collision-disabled bodies are skipped. Publishes
// a BodyCollision event per detected pair.
func (s *System) FindCollisions(body *physics.Body, otherBodies []*physics.Body) []CollisionPair {
	pairs := make([]CollisionPair, 0)
	if body == nil || !body.CollisionEnabled {
		return pairs
	}

	for _, other := range otherBodies {
		if other == nil || other == body || other.ID == body.ID {
			continue
		}
		if !other.CollisionEnabled {
			continue
		}
		result := s.CheckCollision(body, other)
		if result == nil {
			continue
		}
		pairs = append(pairs, CollisionPair{BodyA: body, BodyB: other, Result: result})
		s.EventBus.Publish(event.NewCollisionEvent(s, body.ID, other.ID, result.PenetrationDepth, 0))
	}
	return pairs
}

// QueryNearby returns all bodies within radius of the position,
// delegating to the spatial index. Returns an empty slice before the
// first Rebuild.
func (s *System) QueryNearby(position physics.Vector3, radius float64) []*physics.Body {
	if s.octree == nil {
		return []*physics.Body{}
	}
	return s.octree.QueryRadius(position, radius)
}

// shapeOf treats a body without an explicit shape as a sphere of its
// bounding radius
func shapeOf(body *physics.Body) physics.Shape {
	if body.Shape == nil {
		return physics.Sphere{Radius: body.Radius}
	}
	return body.Shape
}

// worldPoint transforms a shape-local offset into world space through
// the body's orientation and position
func worldPoint(body *physics.Body, local physics.Vector3) physics.Vector3 {
	return body.Position.Add(body.Orientation.Rotate(local))
}

// worldBox translates a local box into world space. Boxes stay axis
// aligned: body orientation is deliberately not applied to them.
func worldBox(body *physics.Body, box physics.Box) physics.AABB {
	offset := body.Position.Add(box.LocalPosition)
	return physics.AABB{
		Min: offset.Add(box.Min),
		Max: offset.Add(box.Max),
	}
}

func boundingSphereWorld(body *physics.Body, shape physics.Shape) (physics.Vector3, float64) {
	center, radius := shape.BoundingSphere()
	return worldPoint(body, center), radius
}
