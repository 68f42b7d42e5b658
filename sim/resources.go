package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConstants is wrapped by every Constants validation error.
var ErrInvalidConstants = errors.New("invalid simulation constants")

// Wind is the global true wind vector.
type Wind struct {
	mgl64.Vec2
}

// Constants are the tunables of the simulation. They are read-only once the
// world is running.
type Constants struct {
	BoatMass                float64
	BoatFrictionCoefficient float64
	SailSecsPerRev          float64
	WindChangeSpeed         float64
	BoatTurnRadius          float64
	InitialWind             mgl64.Vec2
	SailDragCoefficient     float64

	// TurnArcFactor scales the heading change per unit of arc travelled.
	// 2π reproduces the reference feel; 1 gives geometric circular motion.
	TurnArcFactor float64
}

// DefaultConstants returns the stock tuning.
func DefaultConstants() Constants {
	return Constants{
		BoatMass:                1,
		BoatFrictionCoefficient: 0.01,
		SailSecsPerRev:          3,
		WindChangeSpeed:         50,
		BoatTurnRadius:          400,
		InitialWind:             mgl64.Vec2{0, 30},
		SailDragCoefficient:     0.3,
		TurnArcFactor:           2 * math.Pi,
	}
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Validate reports every constant that would make the simulation degenerate.
func (c Constants) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConstants}, args...)...))
		}
	}

	check(finite(c.BoatMass) && c.BoatMass > 0, "boat mass must be positive, got %v", c.BoatMass)
	check(finite(c.BoatFrictionCoefficient) && c.BoatFrictionCoefficient >= 0,
		"boat friction coefficient must be non-negative, got %v", c.BoatFrictionCoefficient)
	check(finite(c.SailSecsPerRev) && c.SailSecsPerRev > 0,
		"sail seconds per revolution must be positive, got %v", c.SailSecsPerRev)
	check(finite(c.WindChangeSpeed) && c.WindChangeSpeed >= 0,
		"wind change speed must be non-negative, got %v", c.WindChangeSpeed)
	check(finite(c.BoatTurnRadius) && c.BoatTurnRadius > 0,
		"boat turn radius must be positive, got %v", c.BoatTurnRadius)
	check(finite(c.InitialWind[0]) && finite(c.InitialWind[1]), "initial wind must be finite, got %v", c.InitialWind)
	check(finite(c.SailDragCoefficient) && c.SailDragCoefficient >= 0,
		"sail drag coefficient must be non-negative, got %v", c.SailDragCoefficient)
	check(finite(c.TurnArcFactor) && c.TurnArcFactor >= 0,
		"turn arc factor must be non-negative, got %v", c.TurnArcFactor)

	return errors.Join(errs...)
}
