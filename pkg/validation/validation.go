// Package validation provides input validation for bodies and engine
// parameters supplied by the orchestrator. The collision engine itself
// never panics on bad input; callers that want early, descriptive
// failures run these checks at the boundary instead.
package validation

import (
	"fmt"

	"github.com/opd-ai/go-collide/pkg/physics"
)

// Octree sizing limits. Depth is capped so insertion cost stays bounded
// even with adversarial configs; capacity below one would subdivide on
// every insert.
const (
	MaxOctreeDepth    = 16
	MinOctreeCapacity = 1
	MaxCoefficient    = 1.0
	MinCoefficient    = 0.0
	MaxBodyIDLength   = 64
)

// ValidateBody checks the invariants the engine assumes about a body:
// a usable ID, positive mass for dynamic bodies, a positive bounding
// radius, coefficient ranges and finite state vectors.
func ValidateBody(body *physics.Body) error {
	if body == nil {
		return fmt.Errorf("body is nil")
	}
	if body.ID == "" {
		return fmt.Errorf("body has no ID")
	}
	if len(body.ID) > MaxBodyIDLength {
		return fmt.Errorf("body ID too long: %d characters (max %d)", len(body.ID), MaxBodyIDLength)
	}
	if !body.Static && body.Mass <= 0 {
		return fmt.Errorf("body %s: dynamic body requires positive mass, got %v", body.ID, body.Mass)
	}
	if body.Radius <= 0 && body.Shape == nil {
		return fmt.Errorf("body %s: bounding radius must be positive, got %v", body.ID, body.Radius)
	}
	if err := validateCoefficient("restitution", body.Restitution); err != nil {
		return fmt.Errorf("body %s: %w", body.ID, err)
	}
	if err := validateCoefficient("friction", body.Friction); err != nil {
		return fmt.Errorf("body %s: %w", body.ID, err)
	}
	if !body.Position.IsFinite() {
		return fmt.Errorf("body %s: position is not finite", body.ID)
	}
	if !body.Velocity.IsFinite() {
		return fmt.Errorf("body %s: velocity is not finite", body.ID)
	}
	if body.AngularVelocity != nil && !body.AngularVelocity.IsFinite() {
		return fmt.Errorf("body %s: angular velocity is not finite", body.ID)
	}
	if body.MomentOfInertia != nil && !body.MomentOfInertia.IsFinite() {
		return fmt.Errorf("body %s: moment of inertia is not finite", body.ID)
	}
	return nil
}

// ValidateBounds checks that a world or query region is a proper box
// with positive extent on every axis.
func ValidateBounds(bounds physics.AABB) error {
	if !bounds.Min.IsFinite() || !bounds.Max.IsFinite() {
		return fmt.Errorf("bounds are not finite")
	}
	size := bounds.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return fmt.Errorf("bounds have non-positive extent: %v", size)
	}
	return nil
}

// ValidateOctreeParams checks the subdivision parameters of the spatial
// index.
func ValidateOctreeParams(maxDepth, maxObjects int) error {
	if maxDepth < 0 || maxDepth > MaxOctreeDepth {
		return fmt.Errorf("octree max depth %d outside [0, %d]", maxDepth, MaxOctreeDepth)
	}
	if maxObjects < MinOctreeCapacity {
		return fmt.Errorf("octree node capacity %d below minimum %d", maxObjects, MinOctreeCapacity)
	}
	return nil
}

func validateCoefficient(name string, v float64) error {
	if v < MinCoefficient || v > MaxCoefficient {
		return fmt.Errorf("%s %v outside [%v, %v]", name, v, MinCoefficient, MaxCoefficient)
	}
	return nil
}
