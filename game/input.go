package game

// Input is the control snapshot for one tick. The driver fills it from the
// keyboard, or from Autopilot in headless runs.
type Input struct {
	Left, Right bool
	Next        bool // Enter, edge-triggered
	Advance     bool // Debug only: jump to the next river section
}

// Steering converts the held direction keys to a lateral acceleration.
// Holding both keys favours right, matching the order the keys are read.
func (in Input) Steering(accel float64) float64 {
	switch {
	case in.Right:
		return accel
	case in.Left:
		return -accel
	}
	return 0
}
