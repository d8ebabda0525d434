// pkg/physics/quaternion.go
package physics

import "math"

// Quaternion represents a rotation as w + xi + yj + zk.
// Like Vector3 it is a pure value type.
type Quaternion struct {
	W float64
	X float64
	Y float64
	Z float64
}

// IdentityQuaternion returns the no-rotation quaternion
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle builds a rotation of angle radians around axis.
// The axis does not need to be normalized.
func QuaternionFromAxisAngle(axis Vector3, angle float64) Quaternion {
	unit := axis.Normalize()
	half := angle / 2
	sin := math.Sin(half)
	return Quaternion{
		W: math.Cos(half),
		X: unit.X * sin,
		Y: unit.Y * sin,
		Z: unit.Z * sin,
	}
}

// Mul returns the Hamilton product q*other, composing rotations
// (other is applied first)
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

// Conjugate returns the inverse rotation for unit quaternions
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Length returns the quaternion magnitude
func (q Quaternion) Length() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns a unit quaternion. A zero quaternion normalizes
// to the identity rather than dividing by zero.
func (q Quaternion) Normalize() Quaternion {
	length := q.Length()
	if length == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{W: q.W / length, X: q.X / length, Y: q.Y / length, Z: q.Z / length}
}

// Rotate applies the rotation to a vector using q * v * q^-1
func (q Quaternion) Rotate(v Vector3) Vector3 {
	p := Quaternion{W: 0, X: v.X, Y: v.Y, Z: v.Z}
	r := q.Mul(p).Mul(q.Conjugate())
	return Vector3{X: r.X, Y: r.Y, Z: r.Z}
}
