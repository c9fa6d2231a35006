package input

import (
	"github.com/charmbracelet/harmonica"
)

// Spring parameters for smoothed motion.
const (
	springFrequency = 4.0 // moderate speed
	springDamping   = 1.0 // critically damped, no overshoot
)

// Axis tracks velocity along one movement axis with spring decay.
type Axis struct {
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // spring velocity used to animate Velocity toward 0
}

// NewAxis creates an axis whose velocity decays at the given frame rate.
func NewAxis(fps int) Axis {
	return Axis{
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
	}
}

// Update returns the distance to move this frame and decays the velocity.
func (a *Axis) Update() float64 {
	d := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return d
}

// Impulse returns the initial velocity that makes a decaying axis travel
// roughly distance in total at the given frame rate.
func Impulse(distance float64, fps int) float64 {
	return distance * springFrequency / (2 * float64(fps))
}

// Stop drops any remaining velocity.
func (a *Axis) Stop() {
	a.Velocity, a.accel = 0, 0
}
