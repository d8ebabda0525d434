// pkg/physics/shape.go
package physics

// Shape is the sealed union of collision shape variants. Geometry is
// immutable once constructed; callers rebuild a shape rather than
// mutating one in place. Only Sphere and Box have dedicated narrow-phase
// routines; the remaining variants are detected through their bounding
// sphere (see BoundingSphere and the dispatch in pkg/engine).
type Shape interface {
	// BoundingSphere returns a conservative enclosing sphere in local
	// space: its center offset from the shape's local position and its
	// radius. Every variant must provide one so shapes without a
	// dedicated detection routine still participate in collision checks.
	BoundingSphere() (center Vector3, radius float64)

	isShape()
}

// Sphere is a ball of the given radius centered at LocalPosition
type Sphere struct {
	LocalPosition Vector3
	Radius        float64
}

// Box is an axis-aligned box given by its corners in local space
type Box struct {
	LocalPosition Vector3
	Min           Vector3
	Max           Vector3
}

// CapsuleAxis identifies the long axis of a capsule
type CapsuleAxis int

const (
	CapsuleAxisX CapsuleAxis = iota
	CapsuleAxisY
	CapsuleAxisZ
)

// Capsule is a cylinder of the given height capped by hemispheres.
// Declared but without a dedicated detection routine: it collides via
// its bounding sphere only.
type Capsule struct {
	LocalPosition Vector3
	Radius        float64
	Height        float64
	Axis          CapsuleAxis
}

// Compound groups child shapes under a shared local offset. Like
// Capsule it collides via its bounding sphere only.
type Compound struct {
	LocalPosition Vector3
	Children      []Shape
}

func (Sphere) isShape()   {}
func (Box) isShape()      {}
func (Capsule) isShape()  {}
func (Compound) isShape() {}

// BoundingSphere of a sphere is the sphere itself
func (s Sphere) BoundingSphere() (Vector3, float64) {
	return s.LocalPosition, s.Radius
}

// BoundingSphere of a box is centered on the box and reaches its corners
func (b Box) BoundingSphere() (Vector3, float64) {
	bounds := AABB{Min: b.Min, Max: b.Max}
	center := bounds.Center()
	radius := bounds.Size().Length() / 2
	return b.LocalPosition.Add(center), radius
}

// BoundingSphere of a capsule spans half its height plus the cap radius
func (c Capsule) BoundingSphere() (Vector3, float64) {
	return c.LocalPosition, c.Height/2 + c.Radius
}

// BoundingSphere of a compound encloses every child's bounding sphere
func (c Compound) BoundingSphere() (Vector3, float64) {
	if len(c.Children) == 0 {
		return c.LocalPosition, 0
	}
	radius := 0.0
	for _, child := range c.Children {
		center, r := child.BoundingSphere()
		if reach := center.Length() + r; reach > radius {
			radius = reach
		}
	}
	return c.LocalPosition, radius
}
