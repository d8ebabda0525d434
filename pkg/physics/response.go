// pkg/physics/response.go
package physics

import (
	"errors"
	"math"
)

// ErrNoDynamicBody is returned by Resolve when both bodies are
// immovable: the impulse denominator is exactly zero and no finite
// impulse exists. Callers should filter such pairs before resolving.
var ErrNoDynamicBody = errors.New("physics: resolve requires at least one dynamic body")

// staticFrictionDeadband is the tangential speed below which no
// friction impulse is applied
const staticFrictionDeadband = 0.01

// Response is the output of Resolve. Like CollisionResult it is
// ephemeral: computed, optionally inspected or scaled by the caller,
// then committed with ApplyImpulse. Resolve never applies its own
// output.
type Response struct {
	// LinearImpulse is the impulse in newton-seconds acting along the
	// contact normal (which points from body A toward body B). Body B
	// receives it as-is; body A receives its negation:
	//
	//	ApplyImpulse(bodyB, resp.LinearImpulse, resp.AngularImpulseB)
	//	ApplyImpulse(bodyA, resp.LinearImpulse.Negate(), resp.AngularImpulseA)
	LinearImpulse Vector3

	// AngularImpulseA and AngularImpulseB are angular velocity deltas
	// (the division by inertia already happened); nil when a body has
	// no angular terms
	AngularImpulseA *Vector3
	AngularImpulseB *Vector3

	// SeparationVelocity is the closing speed along the normal after
	// restitution, >= 0 for any resolved contact
	SeparationVelocity float64

	// ImpactEnergy is the kinetic energy dissipated into the impact in
	// joules, from the reduced mass and impact speed; always >= 0
	ImpactEnergy float64

	// ImpulseMagnitude is the scalar normal impulse j
	ImpulseMagnitude float64
}

// Resolve computes the impulse response for one contact between two
// bodies. It is a pure computation: body state is read but never
// written. Contacts that are already separating produce a zero response
// and no error. When both bodies are static (zero total inverse mass
// and no angular terms) it returns ErrNoDynamicBody.
//
// The result's RelativeVelocity and ImpulseMagnitude annotations are
// filled in as a side channel for damage and scoring layers.
func Resolve(bodyA, bodyB *Body, collision *CollisionResult) (*Response, error) {
	normal := collision.Normal
	rA := collision.Point.Sub(bodyA.Position)
	rB := collision.Point.Sub(bodyB.Position)

	vA := contactVelocity(bodyA, rA)
	vB := contactVelocity(bodyB, rB)
	relVel := vB.Sub(vA)
	velAlongNormal := relVel.Dot(normal)

	collision.RelativeVelocity = relVel

	// Separating contacts never receive an impulse
	if velAlongNormal > 0 {
		return &Response{SeparationVelocity: velAlongNormal}, nil
	}

	restitution := (bodyA.Restitution + bodyB.Restitution) / 2
	friction := (bodyA.Friction + bodyB.Friction) / 2

	invMassA := bodyA.InverseMass()
	invMassB := bodyB.InverseMass()
	angularTermA := angularTerm(bodyA, rA, normal)
	angularTermB := angularTerm(bodyB, rB, normal)

	denominator := invMassA + invMassB + angularTermA + angularTermB
	if denominator == 0 {
		return nil, ErrNoDynamicBody
	}

	j := -(1 + restitution) * velAlongNormal / denominator
	impulse := normal.Scale(j)
	collision.ImpulseMagnitude = j

	var angularImpulseA, angularImpulseB *Vector3
	if bodyA.hasAngular() {
		// The impulse acts in the opposite direction on body A
		delta := perAxisDivide(rA.Cross(impulse.Negate()), *bodyA.MomentOfInertia)
		angularImpulseA = &delta
	}
	if bodyB.hasAngular() {
		delta := perAxisDivide(rB.Cross(impulse), *bodyB.MomentOfInertia)
		angularImpulseB = &delta
	}

	// Coulomb friction along the tangent, with a static deadband for
	// near-zero sliding speeds
	tangent := relVel.Sub(normal.Scale(velAlongNormal))
	if tangentSpeed := tangent.Length(); tangentSpeed >= staticFrictionDeadband {
		frictionImpulse := tangent.Scale(1 / tangentSpeed).Scale(-friction * math.Abs(j))
		impulse = impulse.Add(frictionImpulse)
	}

	// Impact energy uses raw masses regardless of static flags
	energy := 0.0
	if total := bodyA.Mass + bodyB.Mass; total > 0 {
		reducedMass := bodyA.Mass * bodyB.Mass / total
		energy = 0.5 * reducedMass * velAlongNormal * velAlongNormal
	}

	return &Response{
		LinearImpulse:      impulse,
		AngularImpulseA:    angularImpulseA,
		AngularImpulseB:    angularImpulseB,
		SeparationVelocity: -restitution * velAlongNormal,
		ImpactEnergy:       energy,
		ImpulseMagnitude:   j,
	}, nil
}

// ApplyImpulse commits a resolved impulse to a body. Static bodies are
// never mutated, for any impulse magnitude. The angular impulse is
// added directly to the angular velocity: the division by inertia
// already happened in Resolve.
func ApplyImpulse(body *Body, linear Vector3, angular *Vector3) {
	if body.Static {
		return
	}
	body.Velocity = body.Velocity.Add(linear.Scale(body.InverseMass()))
	if angular != nil && body.AngularVelocity != nil {
		*body.AngularVelocity = body.AngularVelocity.Add(*angular)
	}
}

// SeparateBodies performs positional correction for a penetrating
// contact, independent of the velocity impulse step. The penetration
// is distributed proportional to the other body's mass, so the heavier
// body moves less; static bodies never move. No-op when the contact
// does not penetrate.
func SeparateBodies(bodyA, bodyB *Body, collision *CollisionResult) {
	if collision.PenetrationDepth <= 0 {
		return
	}
	total := bodyA.Mass + bodyB.Mass
	if total <= 0 {
		return
	}
	if !bodyA.Static {
		share := collision.PenetrationDepth * bodyB.Mass / total
		bodyA.Position = bodyA.Position.Sub(collision.Normal.Scale(share))
	}
	if !bodyB.Static {
		share := collision.PenetrationDepth * bodyA.Mass / total
		bodyB.Position = bodyB.Position.Add(collision.Normal.Scale(share))
	}
}

// contactVelocity is the velocity of the body's material at the contact
// offset r: linear velocity plus the angular contribution omega x r
func contactVelocity(body *Body, r Vector3) Vector3 {
	if body.AngularVelocity == nil {
		return body.Velocity
	}
	return body.Velocity.Add(body.AngularVelocity.Cross(r))
}

// angularTerm computes the body's rotational contribution to the
// impulse denominator: ((r x n)/I) x r . n with a diagonal inertia
// tensor applied per axis. Zero for static bodies and bodies without
// angular state.
func angularTerm(body *Body, r, normal Vector3) float64 {
	if !body.hasAngular() {
		return 0
	}
	rCrossN := perAxisDivide(r.Cross(normal), *body.MomentOfInertia)
	return rCrossN.Cross(r).Dot(normal)
}

// perAxisDivide divides a vector by a diagonal tensor, axis by axis.
// Axes with zero inertia contribute nothing rather than dividing by
// zero.
func perAxisDivide(v, inertia Vector3) Vector3 {
	out := Vector3{}
	if inertia.X != 0 {
		out.X = v.X / inertia.X
	}
	if inertia.Y != 0 {
		out.Y = v.Y / inertia.Y
	}
	if inertia.Z != 0 {
		out.Z = v.Z / inertia.Z
	}
	return out
}
