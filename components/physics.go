package components

import (
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	SpeedX   float64
	SpeedY   float64
	AccelX   float64 // accumulated by commands, consumed once per tick
	AccelY   float64
	Gravity  float64
	Friction float64
}

var Physics = donburi.NewComponentType[PhysicsData]()
