package config

import "fmt"

// Speeds are the selectable simulation speed multipliers shared by the
// viewers; 0 is paused.
var Speeds = []float64{0, 0.5, 1, 2, 4}

// ClampSpeed bounds s to the range of Speeds.
func ClampSpeed(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > Speeds[len(Speeds)-1]:
		return Speeds[len(Speeds)-1]
	}
	return s
}

// SlowerSpeed returns the next lower speed step.
func SlowerSpeed(cur float64) float64 {
	for i := len(Speeds) - 1; i >= 0; i-- {
		if Speeds[i] < cur {
			return Speeds[i]
		}
	}
	return Speeds[0]
}

// FasterSpeed returns the next higher speed step.
func FasterSpeed(cur float64) float64 {
	for _, s := range Speeds {
		if s > cur {
			return s
		}
	}
	return Speeds[len(Speeds)-1]
}

func SpeedLabel(s float64) string {
	switch s {
	case 0:
		return "PAUSED"
	case 1, 2, 4:
		return fmt.Sprintf("%.0fx", s)
	}
	return fmt.Sprintf("%.1fx", s)
}
