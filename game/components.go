package game

import "github.com/plus3/boringgame/ecs"

// DefaultSpeed is the movement speed given to the player, in units per second.
const DefaultSpeed = 500.0

type Vec2 struct {
	X, Y float64
}

type Vec3 struct {
	X, Y, Z float64
}

// Transform places an entity in world space. The origin is the centre of the
// viewport with Y pointing up; Z orders sprites when drawing.
type Transform struct {
	Translation Vec3
	Scale       Vec2
}

// Speed is how fast an entity moves, in units per second.
type Speed struct {
	Value float64
}

// Player tags the entity driven by keyboard input.
type Player struct{}

// Sprite names the image a host draws for an entity.
type Sprite struct {
	Name string
}

// Viewport is the drawable area in pixels. It is stored as a singleton.
type Viewport struct {
	Width, Height float64
}

// RegisterComponents registers every entity component of the game.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Sprite](registry)
}
