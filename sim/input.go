package sim

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/plus3/sailsim/ecs"
)

//go:generate go tool stringer -type=Key -linecomment

// Key is a logical control, independent of the physical key bound to it.
type Key int

const (
	KeyReset     Key = iota // reset
	KeySailLeft             // sail-left
	KeySailRight            // sail-right
	KeyWindUp               // wind-up
	KeyWindDown             // wind-down
	KeyTurnLeft             // turn-left
	KeyTurnRight            // turn-right
)

const keyCount = int(KeyTurnRight) + 1

// Keys returns every logical key in declaration order.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// ParseKey maps a logical key name such as "sail-left" to its Key.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Keys() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", name)
}

// ControlState is a snapshot of the controls for the current frame.
type ControlState interface {
	Pressed(key Key) bool
	JustReleased(key Key) bool
}

// KeyState is an in-memory ControlState driven by Press and Release calls.
type KeyState struct {
	pressed  [keyCount]bool
	released [keyCount]bool
}

func (s *KeyState) Press(key Key) {
	s.pressed[key] = true
}

// Release lifts key. JustReleased reports it until EndFrame.
func (s *KeyState) Release(key Key) {
	if s.pressed[key] {
		s.released[key] = true
	}
	s.pressed[key] = false
}

// EndFrame clears the release edges.
func (s *KeyState) EndFrame() {
	s.released = [keyCount]bool{}
}

func (s *KeyState) Pressed(key Key) bool {
	return s.pressed[key]
}

func (s *KeyState) JustReleased(key Key) bool {
	return s.released[key]
}

type noControls struct{}

func (noControls) Pressed(Key) bool      { return false }
func (noControls) JustReleased(Key) bool { return false }

// axis returns +1 when only positive is held, -1 when only negative is held,
// and 0 otherwise.
func axis(controls ControlState, positive, negative Key) float64 {
	var dir float64
	if controls.Pressed(positive) {
		dir++
	}
	if controls.Pressed(negative) {
		dir--
	}
	return dir
}

// InputSystem translates the control state into sail rotation, wind changes,
// the ship's turn radius and reset requests.
type InputSystem struct {
	Controls ControlState

	Constants ecs.Resource[Constants]
	Wind      ecs.Resource[Wind]
	Resets    ecs.Events[ResetEvent]
	Sails     ecs.Query[struct {
		*Sail
		*Transform
	}]
	Rudders ecs.Query[struct {
		*TurnRadius
	}]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls
	if controls == nil {
		controls = noControls{}
	}
	constants := s.Constants.Get()
	dt := frame.DeltaTime

	if controls.JustReleased(KeyReset) {
		s.Resets.Send(ResetEvent{})
	}

	if dir := axis(controls, KeySailLeft, KeySailRight); dir != 0 {
		delta := 2 * math.Pi / constants.SailSecsPerRev * dt * dir
		for sail := range s.Sails.Values() {
			sail.Transform.Rotation = normalizeAngle(sail.Transform.Rotation + delta)
		}
	}

	if dir := axis(controls, KeyWindUp, KeyWindDown); dir != 0 {
		if wind := s.Wind.Get(); wind != nil {
			wind.Vec2[1] += constants.WindChangeSpeed * dt * dir
		}
	}

	radius := Straight()
	switch axis(controls, KeyTurnLeft, KeyTurnRight) {
	case 1:
		radius = TurnRadius(constants.BoatTurnRadius)
	case -1:
		radius = TurnRadius(-constants.BoatTurnRadius)
	}
	for rudder := range s.Rudders.Values() {
		*rudder.TurnRadius = radius
	}
}

func (s *InputSystem) Access() ecs.Access {
	return ecs.Access{
		Reads:  []reflect.Type{ecs.TypeOf[Constants]()},
		Writes: []reflect.Type{ecs.TypeOf[Wind](), ecs.TypeOf[Transform](), ecs.TypeOf[TurnRadius](), ecs.TypeOf[ResetEvent]()},
	}
}
