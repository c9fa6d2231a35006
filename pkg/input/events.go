package input

// Event is a backend-neutral input event.
type Event interface {
	isEvent()
}

// Quit requests the program to stop (window closed, signal received).
type Quit struct{}

// KeyDown reports a key press by canonical name.
type KeyDown struct {
	Key string
}

// MouseMotion reports relative pointer movement in pixels.
type MouseMotion struct {
	DX, DY float64
}

func (Quit) isEvent()        {}
func (KeyDown) isEvent()     {}
func (MouseMotion) isEvent() {}
