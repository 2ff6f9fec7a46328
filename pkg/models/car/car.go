package car

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Handling constants for the race car
const (
	MaxSpeed     = 5.0  // pixels per tick
	MinSpeed     = -2.0 // reverse
	Acceleration = 0.2  // per Up key event
	Braking      = 0.2  // per Down key event
	TurnRate     = 0.1  // radians per Left/Right key event
	Friction     = 0.95 // applied once when Up or Down is released
	EdgeMargin   = 15.0 // closest the car centre may get to the canvas edge
)

// Car is the player's car: position, heading in radians and signed speed
type Car struct {
	X     float64
	Y     float64
	Angle float64
	Speed float64
}

// NewCar places a stationary car at (x, y) facing along +X.
func NewCar(x, y float64) Car {
	return Car{X: x, Y: y}
}

// Accelerate increases speed up to MaxSpeed.
func (c *Car) Accelerate() {
	c.Speed = math.Min(MaxSpeed, c.Speed+Acceleration)
}

// Brake decreases speed down to MinSpeed.
func (c *Car) Brake() {
	c.Speed = math.Max(MinSpeed, c.Speed-Braking)
}

// Steer turns the car; negative direction is left.
func (c *Car) Steer(direction float64) {
	c.Angle += direction * TurnRate
}

// Coast applies one step of friction.
func (c *Car) Coast() {
	c.Speed *= Friction
}

// Advance moves the car one tick along its heading and keeps it at least
// EdgeMargin inside a width x height canvas.
func (c *Car) Advance(width, height float64) {
	heading := r2.Vec{X: math.Cos(c.Angle), Y: math.Sin(c.Angle)}
	pos := r2.Add(r2.Vec{X: c.X, Y: c.Y}, r2.Scale(c.Speed, heading))

	c.X = clamp(pos.X, EdgeMargin, width-EdgeMargin)
	c.Y = clamp(pos.Y, EdgeMargin, height-EdgeMargin)
}

// SpeedReading is the dashboard value, out of MaxSpeed*10. Halves round
// toward positive infinity.
func (c Car) SpeedReading() int {
	return int(math.Floor(c.Speed*10 + 0.5))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
