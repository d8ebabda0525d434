// pkg/physics/aabb.go
package physics

// AABB is an axis-aligned bounding box in world space
type AABB struct {
	Min Vector3
	Max Vector3
}

// NewAABB builds a box from center and full extents per axis
func NewAABB(center, size Vector3) AABB {
	half := size.Scale(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Center returns the midpoint of the box
func (b AABB) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Size returns the full extents of the box per axis
func (b AABB) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Contains checks if the point is inside the box (boundary inclusive)
func (b AABB) Contains(point Vector3) bool {
	return point.X >= b.Min.X && point.X <= b.Max.X &&
		point.Y >= b.Min.Y && point.Y <= b.Max.Y &&
		point.Z >= b.Min.Z && point.Z <= b.Max.Z
}

// Intersects checks if the box overlaps another box
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// IntersectsSphere checks if a sphere overlaps the box by clamping the
// sphere center to the box and comparing the squared distance against
// the squared radius
func (b AABB) IntersectsSphere(center Vector3, radius float64) bool {
	closest := b.ClosestPoint(center)
	return closest.DistanceSquared(center) <= radius*radius
}

// ClosestPoint clamps a point to the box bounds per axis, yielding the
// nearest point on or inside the box
func (b AABB) ClosestPoint(point Vector3) Vector3 {
	return Vector3{
		X: clamp(point.X, b.Min.X, b.Max.X),
		Y: clamp(point.Y, b.Min.Y, b.Max.Y),
		Z: clamp(point.Z, b.Min.Z, b.Max.Z),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
