// pkg/physics/detect.go
package physics

import "math"

// degenerateDistance is the squared-distance floor below which two
// points are treated as coincident and a fixed fallback normal is used
// instead of a computed (and potentially NaN) unit vector.
const degenerateDistance = 1e-10

// CollisionResult describes one detected contact. Results are ephemeral:
// produced and consumed within a single tick, never persisted.
type CollisionResult struct {
	Collided bool

	// Point is the contact point in world space
	Point Vector3

	// Normal is the unit direction that separates the penetrating
	// bodies, pointing from the first body toward the second
	Normal Vector3

	// PenetrationDepth is the overlap along the normal, always >= 0
	PenetrationDepth float64

	// TimeOfImpact is the fraction of the swept interval at which
	// surfaces touch. Only set by SweepSphereSphere; discrete tests
	// leave it zero.
	TimeOfImpact float64

	// RelativeVelocity and ImpulseMagnitude are annotations filled in
	// by the resolver, not by detection
	RelativeVelocity Vector3
	ImpulseMagnitude float64
}

// DetectSphereSphere checks two spheres for overlap. Returns nil when
// the spheres do not collide.
func DetectSphereSphere(center1 Vector3, radius1 float64, center2 Vector3, radius2 float64) *CollisionResult {
	radiusSum := radius1 + radius2
	distSq := center1.DistanceSquared(center2)
	if distSq >= radiusSum*radiusSum {
		return nil
	}

	dist := math.Sqrt(distSq)
	normal := Vector3{Z: 1} // coincident centers
	if dist > degenerateDistance {
		normal = center2.Sub(center1).Scale(1 / dist)
	}

	penetration := radiusSum - dist

	// Contact sits on sphere1's surface pulled inward by half the
	// penetration, keeping it inside the overlap region
	point := center1.Add(normal.Scale(radius1 - penetration/2))

	return &CollisionResult{
		Collided:         true,
		Point:            point,
		Normal:           normal,
		PenetrationDepth: penetration,
	}
}

// DetectSphereBox checks a sphere against an axis-aligned box. The
// normal points from the box toward the sphere. Returns nil when they
// do not collide.
func DetectSphereBox(center Vector3, radius float64, box AABB) *CollisionResult {
	closest := box.ClosestPoint(center)
	distSq := closest.DistanceSquared(center)
	if distSq >= radius*radius {
		return nil
	}

	dist := math.Sqrt(distSq)
	normal := Vector3{Y: 1} // sphere center inside the box
	if dist > degenerateDistance {
		normal = center.Sub(closest).Scale(1 / dist)
	}

	return &CollisionResult{
		Collided:         true,
		Point:            closest,
		Normal:           normal,
		PenetrationDepth: radius - dist,
	}
}

// DetectBoxBox checks two axis-aligned boxes using per-axis overlap.
// The axis of minimum overlap becomes the separating normal; the
// contact point is the midpoint of the overlap region. Returns nil when
// any axis shows separation.
func DetectBoxBox(box1, box2 AABB) *CollisionResult {
	overlapX := math.Min(box1.Max.X, box2.Max.X) - math.Max(box1.Min.X, box2.Min.X)
	overlapY := math.Min(box1.Max.Y, box2.Max.Y) - math.Max(box1.Min.Y, box2.Min.Y)
	overlapZ := math.Min(box1.Max.Z, box2.Max.Z) - math.Max(box1.Min.Z, box2.Min.Z)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return nil
	}

	// Separate along the axis of least overlap; the sign follows
	// whichever box extends further on that axis
	penetration := overlapX
	normal := Vector3{X: 1}
	if box1.Max.X > box2.Max.X {
		normal = Vector3{X: -1}
	}
	if overlapY < penetration {
		penetration = overlapY
		normal = Vector3{Y: 1}
		if box1.Max.Y > box2.Max.Y {
			normal = Vector3{Y: -1}
		}
	}
	if overlapZ < penetration {
		penetration = overlapZ
		normal = Vector3{Z: 1}
		if box1.Max.Z > box2.Max.Z {
			normal = Vector3{Z: -1}
		}
	}

	point := Vector3{
		X: (math.Max(box1.Min.X, box2.Min.X) + math.Min(box1.Max.X, box2.Max.X)) / 2,
		Y: (math.Max(box1.Min.Y, box2.Min.Y) + math.Min(box1.Max.Y, box2.Max.Y)) / 2,
		Z: (math.Max(box1.Min.Z, box2.Min.Z) + math.Min(box1.Max.Z, box2.Max.Z)) / 2,
	}

	return &CollisionResult{
		Collided:         true,
		Point:            point,
		Normal:           normal,
		PenetrationDepth: penetration,
	}
}

// SweepSphereSphere performs continuous collision detection for a
// sphere moving from start to end against a static sphere. It solves
// |P(t) - C|^2 = (r1+r2)^2 for t in [0,1] where P linearly interpolates
// the motion. Returns nil when the path misses the static sphere or the
// earlier root falls outside the interval. On a hit PenetrationDepth is
// zero (surfaces touch exactly at the time of impact) and TimeOfImpact
// carries t for the caller to rewind or clamp motion.
func SweepSphereSphere(start, end Vector3, radius float64, staticCenter Vector3, staticRadius float64) *CollisionResult {
	path := end.Sub(start)
	toStatic := staticCenter.Sub(start)
	radiusSum := radius + staticRadius

	a := path.Dot(path)
	if a <= degenerateDistance {
		// No meaningful motion; a discrete test covers this case
		return nil
	}
	b := -2 * path.Dot(toStatic)
	c := toStatic.Dot(toStatic) - radiusSum*radiusSum

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	t := (-b - math.Sqrt(discriminant)) / (2 * a)
	if t < 0 || t > 1 {
		return nil
	}

	impactCenter := start.Add(path.Scale(t))
	normal := Vector3{Z: 1}
	if dist := impactCenter.Distance(staticCenter); dist > degenerateDistance {
		normal = staticCenter.Sub(impactCenter).Scale(1 / dist)
	}

	return &CollisionResult{
		Collided:         true,
		Point:            impactCenter.Add(normal.Scale(radius)),
		Normal:           normal,
		PenetrationDepth: 0,
		TimeOfImpact:     t,
	}
}
