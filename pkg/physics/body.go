// pkg/physics/body.go
package physics

// Default material coefficients applied when a body does not set its own
const (
	DefaultRestitution = 0.3
	DefaultFriction    = 0.5
)

// Body is the mutable simulation state of one rigid object. It is owned
// by the calling orchestrator; the collision engine reads its fields and
// writes velocity, angular velocity and position only through the
// explicit mutators ApplyImpulse and SeparateBodies.
type Body struct {
	// ID identifies the body across broad-phase queries. The engine
	// assumes uniqueness but does not enforce it.
	ID string

	Position Vector3
	Velocity Vector3

	// Orientation rotates the body's shape from local to world space
	Orientation Quaternion

	// AngularVelocity and MomentOfInertia are optional; both must be
	// set (and Static false) for a body to take part in angular
	// response. MomentOfInertia is a diagonal tensor, one term per axis.
	AngularVelocity *Vector3
	MomentOfInertia *Vector3

	// Mass must be positive unless Static is set
	Mass float64

	// Restitution and Friction are bounce and surface coefficients in
	// [0,1]. NewBody seeds them with the package defaults.
	Restitution float64
	Friction    float64

	// Static marks an immovable body with infinite effective mass
	Static bool

	// Radius is the bounding radius used by the broad phase and by
	// sphere-based narrow phase checks
	Radius float64

	// Shape optionally refines the narrow phase; a nil shape is treated
	// as a sphere of Radius
	Shape Shape

	// CollisionEnabled excludes the body from the spatial index and all
	// pair checks when false. NewBody enables it.
	CollisionEnabled bool
}

// NewBody creates a dynamic body with default material coefficients and
// collision enabled
func NewBody(id string, position Vector3, mass, radius float64) *Body {
	return &Body{
		ID:               id,
		Position:         position,
		Orientation:      IdentityQuaternion(),
		Mass:             mass,
		Restitution:      DefaultRestitution,
		Friction:         DefaultFriction,
		Radius:           radius,
		CollisionEnabled: true,
	}
}

// NewStaticBody creates an immovable body. Mass is kept for impact
// energy accounting but never produces velocity changes.
func NewStaticBody(id string, position Vector3, mass, radius float64) *Body {
	b := NewBody(id, position, mass, radius)
	b.Static = true
	return b
}

// InverseMass returns 1/mass, or 0 for static bodies
func (b *Body) InverseMass() float64 {
	if b.Static || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// hasAngular reports whether the body participates in angular response
func (b *Body) hasAngular() bool {
	return !b.Static && b.AngularVelocity != nil && b.MomentOfInertia != nil
}

// BoundingRadius returns the radius the broad phase indexes the body
// under: the shape's bounding sphere when a shape is set, Radius
// otherwise
func (b *Body) BoundingRadius() float64 {
	if b.Shape == nil {
		return b.Radius
	}
	center, radius := b.Shape.BoundingSphere()
	return center.Length() + radius
}
