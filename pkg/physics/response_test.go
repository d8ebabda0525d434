// pkg/physics/response_test.go
package physics

import (
	"errors"
	"math"
	"testing"
)

// headOnPair builds the canonical elastic test case: two unit-mass
// radius-1 spheres at the origin and (1.5,0,0), closing at 1 m/s each
func headOnPair(restitution float64) (*Body, *Body, *CollisionResult) {
	a := NewBody("a", Vector3{}, 1, 1)
	a.Velocity = Vector3{X: 1}
	a.Restitution = restitution
	a.Friction = 0

	b := NewBody("b", Vector3{X: 1.5}, 1, 1)
	b.Velocity = Vector3{X: -1}
	b.Restitution = restitution
	b.Friction = 0

	collision := DetectSphereSphere(a.Position, 1, b.Position, 1)
	return a, b, collision
}

func TestResolve_ElasticHeadOn(t *testing.T) {
	a, b, collision := headOnPair(1)
	if collision == nil {
		t.Fatal("expected detection")
	}
	if math.Abs(collision.PenetrationDepth-0.5) > epsilon {
		t.Fatalf("penetration = %v, want 0.5", collision.PenetrationDepth)
	}
	if !vecNear(collision.Normal, Vector3{X: 1}) {
		t.Fatalf("normal = %v, want (1,0,0)", collision.Normal)
	}

	resp, err := Resolve(a, b, collision)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	// Fully elastic unit masses closing at 2 m/s: j = 2
	if math.Abs(resp.ImpulseMagnitude-2) > epsilon {
		t.Errorf("impulse magnitude = %v, want 2", resp.ImpulseMagnitude)
	}

	ApplyImpulse(b, resp.LinearImpulse, resp.AngularImpulseB)
	ApplyImpulse(a, resp.LinearImpulse.Negate(), resp.AngularImpulseA)

	// Velocities exactly reversed; post-impulse relative normal
	// velocity is +2 m/s
	if !vecNear(a.Velocity, Vector3{X: -1}) {
		t.Errorf("body A velocity = %v, want (-1,0,0)", a.Velocity)
	}
	if !vecNear(b.Velocity, Vector3{X: 1}) {
		t.Errorf("body B velocity = %v, want (1,0,0)", b.Velocity)
	}
	post := b.Velocity.Sub(a.Velocity).Dot(collision.Normal)
	if math.Abs(post-2) > epsilon {
		t.Errorf("post-impulse separation = %v, want 2", post)
	}
	if math.Abs(resp.SeparationVelocity-2) > epsilon {
		t.Errorf("SeparationVelocity = %v, want 2", resp.SeparationVelocity)
	}

	// Reduced mass 0.5, impact speed 2: energy 1 J
	if math.Abs(resp.ImpactEnergy-1) > epsilon {
		t.Errorf("impact energy = %v, want 1", resp.ImpactEnergy)
	}
}

func TestResolve_SeparatingContactZeroImpulse(t *testing.T) {
	a, b, collision := headOnPair(0.5)
	// Reverse the closing velocities: the spheres still overlap but are
	// moving apart
	a.Velocity = Vector3{X: -1}
	b.Velocity = Vector3{X: 1}

	resp, err := Resolve(a, b, collision)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if resp.LinearImpulse != (Vector3{}) {
		t.Errorf("separating contact produced impulse %v, want zero", resp.LinearImpulse)
	}
	if resp.ImpulseMagnitude != 0 {
		t.Errorf("impulse magnitude = %v, want 0", resp.ImpulseMagnitude)
	}
	if resp.SeparationVelocity <= 0 {
		t.Errorf("separation velocity = %v, want > 0", resp.SeparationVelocity)
	}
}

func TestResolve_EnergyNonNegative(t *testing.T) {
	for _, restitution := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, speed := range []float64{0.1, 1, 10, 500} {
			a, b, collision := headOnPair(restitution)
			a.Velocity = Vector3{X: speed}
			b.Velocity = Vector3{X: -speed / 3, Y: speed / 2}

			resp, err := Resolve(a, b, collision)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if resp.ImpactEnergy < 0 {
				t.Errorf("restitution %v speed %v: impact energy %v < 0",
					restitution, speed, resp.ImpactEnergy)
			}
		}
	}
}

func TestResolve_StaticBodyAbsorbsImpact(t *testing.T) {
	wall := NewStaticBody("wall", Vector3{X: 1.5}, 1000, 1)
	ball := NewBody("ball", Vector3{}, 1, 1)
	ball.Velocity = Vector3{X: 1}
	ball.Restitution = 1
	ball.Friction = 0
	wall.Restitution = 1
	wall.Friction = 0

	collision := DetectSphereSphere(ball.Position, 1, wall.Position, 1)
	resp, err := Resolve(ball, wall, collision)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	ApplyImpulse(wall, resp.LinearImpulse, resp.AngularImpulseB)
	ApplyImpulse(ball, resp.LinearImpulse.Negate(), resp.AngularImpulseA)

	if wall.Velocity != (Vector3{}) {
		t.Errorf("static body gained velocity %v", wall.Velocity)
	}
	// Elastic bounce off an immovable wall reverses the ball
	if !vecNear(ball.Velocity, Vector3{X: -1}) {
		t.Errorf("ball velocity = %v, want (-1,0,0)", ball.Velocity)
	}
}

func TestResolve_BothStatic(t *testing.T) {
	a := NewStaticBody("a", Vector3{}, 10, 1)
	b := NewStaticBody("b", Vector3{X: 1}, 10, 1)
	// Drive the contact so it is not separating
	a.Velocity = Vector3{X: 1}

	collision := DetectSphereSphere(a.Position, 1, b.Position, 1)
	_, err := Resolve(a, b, collision)

	if !errors.Is(err, ErrNoDynamicBody) {
		t.Errorf("Resolve() error = %v, want ErrNoDynamicBody", err)
	}
}

func TestResolve_FrictionDeadband(t *testing.T) {
	t.Run("sliding contact gets friction", func(t *testing.T) {
		a, b, collision := headOnPair(0)
		a.Friction = 1
		b.Friction = 1
		// Add tangential sliding well above the deadband
		b.Velocity = b.Velocity.Add(Vector3{Y: 5})

		resp, err := Resolve(a, b, collision)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if resp.LinearImpulse.Y == 0 {
			t.Error("expected tangential friction component, got none")
		}
		// Friction opposes the relative tangential motion of body B
		if resp.LinearImpulse.Y > 0 {
			t.Errorf("friction impulse %v should oppose +y sliding", resp.LinearImpulse.Y)
		}
	})

	t.Run("near-static tangential motion gets none", func(t *testing.T) {
		a, b, collision := headOnPair(0)
		a.Friction = 1
		b.Friction = 1
		b.Velocity = b.Velocity.Add(Vector3{Y: 0.005}) // below 0.01 m/s

		resp, err := Resolve(a, b, collision)
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if resp.LinearImpulse.Y != 0 {
			t.Errorf("deadband should suppress friction, got %v", resp.LinearImpulse.Y)
		}
	})
}

func TestResolve_AngularResponse(t *testing.T) {
	a := NewBody("a", Vector3{}, 1, 1)
	a.Velocity = Vector3{X: 1}
	a.Friction = 0
	a.AngularVelocity = &Vector3{}
	a.MomentOfInertia = &Vector3{X: 0.4, Y: 0.4, Z: 0.4}

	b := NewBody("b", Vector3{X: 2}, 1, 1)
	b.Friction = 0

	// Sphere-sphere contacts sit on the line of centers and produce no
	// torque; an off-axis contact (as a box edge would give) does
	collision := &CollisionResult{
		Collided:         true,
		Point:            Vector3{X: 1, Y: 0.5},
		Normal:           Vector3{X: 1},
		PenetrationDepth: 0.1,
	}

	resp, err := Resolve(a, b, collision)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if resp.AngularImpulseA == nil {
		t.Fatal("body with angular state should receive an angular impulse")
	}
	if resp.AngularImpulseB != nil {
		t.Error("body without angular state should not receive an angular impulse")
	}

	before := *a.AngularVelocity
	ApplyImpulse(a, resp.LinearImpulse.Negate(), resp.AngularImpulseA)
	if *a.AngularVelocity == before {
		t.Error("off-center impact should change angular velocity")
	}
}

func TestApplyImpulse_StaticInvariance(t *testing.T) {
	body := NewStaticBody("station", Vector3{}, 1e6, 10)
	spin := Vector3{Z: 1}
	body.AngularVelocity = &spin
	body.MomentOfInertia = &Vector3{X: 1, Y: 1, Z: 1}

	for _, impulse := range []Vector3{
		{X: 1}, {Y: -1e9}, {X: 3, Y: 4, Z: 5},
	} {
		angular := Vector3{X: 100}
		ApplyImpulse(body, impulse, &angular)

		if body.Velocity != (Vector3{}) {
			t.Fatalf("impulse %v changed static body velocity to %v", impulse, body.Velocity)
		}
		if *body.AngularVelocity != spin {
			t.Fatalf("impulse %v changed static body spin to %v", impulse, *body.AngularVelocity)
		}
	}
}

func TestApplyImpulse_MassScaling(t *testing.T) {
	heavy := NewBody("heavy", Vector3{}, 10, 1)
	ApplyImpulse(heavy, Vector3{X: 5}, nil)

	if !vecNear(heavy.Velocity, Vector3{X: 0.5}) {
		t.Errorf("velocity = %v, want (0.5,0,0)", heavy.Velocity)
	}
}

func TestSeparateBodies(t *testing.T) {
	t.Run("equal masses split penetration", func(t *testing.T) {
		a := NewBody("a", Vector3{}, 1, 1)
		b := NewBody("b", Vector3{X: 1.5}, 1, 1)
		collision := DetectSphereSphere(a.Position, 1, b.Position, 1)

		SeparateBodies(a, b, collision)

		if !vecNear(a.Position, Vector3{X: -0.25}) {
			t.Errorf("body A position = %v, want (-0.25,0,0)", a.Position)
		}
		if !vecNear(b.Position, Vector3{X: 1.75}) {
			t.Errorf("body B position = %v, want (1.75,0,0)", b.Position)
		}
	})

	t.Run("heavier body moves less", func(t *testing.T) {
		a := NewBody("a", Vector3{}, 9, 1)
		b := NewBody("b", Vector3{X: 1.5}, 1, 1)
		collision := DetectSphereSphere(a.Position, 1, b.Position, 1)

		SeparateBodies(a, b, collision)

		// A carries 9x the mass, so it moves a tenth of the correction
		if !vecNear(a.Position, Vector3{X: -0.05}) {
			t.Errorf("body A position = %v, want (-0.05,0,0)", a.Position)
		}
		if !vecNear(b.Position, Vector3{X: 1.95}) {
			t.Errorf("body B position = %v, want (1.95,0,0)", b.Position)
		}
	})

	t.Run("static side never moves", func(t *testing.T) {
		wall := NewStaticBody("wall", Vector3{}, 100, 1)
		ball := NewBody("ball", Vector3{X: 1.5}, 1, 1)
		collision := DetectSphereSphere(wall.Position, 1, ball.Position, 1)

		SeparateBodies(wall, ball, collision)

		if wall.Position != (Vector3{}) {
			t.Errorf("static body moved to %v", wall.Position)
		}
		if ball.Position.X <= 1.5 {
			t.Errorf("dynamic body should move away, position %v", ball.Position)
		}
	})

	t.Run("no penetration is a no-op", func(t *testing.T) {
		a := NewBody("a", Vector3{}, 1, 1)
		b := NewBody("b", Vector3{X: 5}, 1, 1)
		collision := &CollisionResult{Collided: false, Normal: Vector3{X: 1}}

		SeparateBodies(a, b, collision)

		if a.Position != (Vector3{}) || b.Position != (Vector3{X: 5}) {
			t.Error("zero penetration should not move bodies")
		}
	})
}

func TestSeparateBodies_Convergence(t *testing.T) {
	// Property: alternating separation and re-detection strictly
	// decreases penetration until the bodies no longer overlap
	a := NewBody("a", Vector3{}, 3, 2)
	b := NewBody("b", Vector3{X: 0.5, Y: 0.2}, 1, 2)

	last := math.Inf(1)
	for i := 0; i < 50; i++ {
		collision := DetectSphereSphere(a.Position, 2, b.Position, 2)
		if collision == nil {
			return // separated
		}
		if collision.PenetrationDepth >= last {
			t.Fatalf("iteration %d: penetration %v did not decrease from %v",
				i, collision.PenetrationDepth, last)
		}
		last = collision.PenetrationDepth
		SeparateBodies(a, b, collision)
	}
	t.Fatal("bodies still overlapping after 50 separation steps")
}

func BenchmarkResolve(b *testing.B) {
	bodyA, bodyB, collision := headOnPair(0.5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(bodyA, bodyB, collision)
	}
}
