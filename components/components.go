// Package components defines ECS components for the game world.
package components

// Position represents an entity's centre in viewport pixels.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in px/s.
type Velocity struct {
	X, Y float64
}

// Acceleration holds the acceleration applied on the last tick, px/s^2.
type Acceleration struct {
	X, Y float64
}

// Body describes an entity's collision shape.
// Circles use Radius; boxes use HalfW/HalfH.
type Body struct {
	Radius       float64
	HalfW, HalfH float64
}

// Leaf marks the player entity.
type Leaf struct{}

// Rock marks an immovable obstacle.
type Rock struct {
	Variant int // 1-based sprite variant
}
