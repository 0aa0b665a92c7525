package systems

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Sampler provides field accelerations at viewport positions.
// Implemented by VectorField.
type Sampler interface {
	Sample(x, y float64) r2.Vec
}

// Kinematic is the motion state shared by the leaf and water particles.
type Kinematic struct {
	Pos, Vel, Acc r2.Vec
}

// Environment composes the forces acting on a moving object.
type Environment struct {
	Field            Sampler
	FlowAcceleration float64 // Constant push toward -y
	Steering         float64 // Lateral acceleration, +x is right
}

// Acceleration returns field + flow + steering at pos.
func (e Environment) Acceleration(pos r2.Vec) r2.Vec {
	var a r2.Vec
	if e.Field != nil {
		a = e.Field.Sample(pos.X, pos.Y)
	}
	a.Y -= e.FlowAcceleration
	a.X += e.Steering
	return a
}

// AccelerationRule computes the acceleration for one particle this tick.
type AccelerationRule func(k *Kinematic) r2.Vec

// Rule adapts the environment for use by the particle painter.
func (e Environment) Rule() AccelerationRule {
	return func(k *Kinematic) r2.Vec {
		return e.Acceleration(k.Pos)
	}
}

// Integrate advances k by dt seconds under env: it samples the acceleration,
// integrates velocity, caps speed at maxVelocity and integrates position.
func Integrate(k *Kinematic, env Environment, maxVelocity, dt float64) {
	k.Acc = env.Acceleration(k.Pos)
	Step(k, maxVelocity, dt)
}

// Step integrates k using its current acceleration.
// A maxVelocity <= 0 leaves speed uncapped.
func Step(k *Kinematic, maxVelocity, dt float64) {
	k.Vel = r2.Add(k.Vel, r2.Scale(dt, k.Acc))
	if maxVelocity > 0 {
		k.Vel = ClampSpeed(k.Vel, maxVelocity)
	}
	k.Pos = r2.Add(k.Pos, r2.Scale(dt, k.Vel))
}

// ClampSpeed rescales v to maxSpeed if it is longer, keeping its direction.
func ClampSpeed(v r2.Vec, maxSpeed float64) r2.Vec {
	speed := r2.Norm(v)
	if speed == 0 || speed <= maxSpeed {
		return v
	}
	return r2.Scale(maxSpeed/speed, v)
}
