package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/sailsim/ecs"
	"github.com/plus3/sailsim/ecs/debugui"
	"github.com/plus3/sailsim/sim"
)

// ebitenKeys maps lower-cased ebiten key names ("a", "space", "arrowleft") to keys.
var ebitenKeys = func() map[string]ebiten.Key {
	keys := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		keys[strings.ToLower(k.String())] = k
	}
	return keys
}()

// keyboard is the ebiten ControlState. Input is ignored while the debug
// overlay has keyboard focus.
type keyboard struct {
	bindings map[sim.Key]ebiten.Key
	capture  *ecs.Resource[debugui.ImguiInputState]
}

func newKeyboard(bindings map[sim.Key]string) (*keyboard, error) {
	kb := &keyboard{bindings: make(map[sim.Key]ebiten.Key, len(bindings))}
	for logical, physical := range bindings {
		key, ok := ebitenKeys[physical]
		if !ok {
			return nil, fmt.Errorf("bind %s: unknown key %q", logical, physical)
		}
		kb.bindings[logical] = key
	}
	return kb, nil
}

func (kb *keyboard) captured() bool {
	if kb.capture == nil {
		return false
	}
	state := kb.capture.Get()
	return state != nil && state.WantCaptureKeyboard
}

func (kb *keyboard) Pressed(key sim.Key) bool {
	k, ok := kb.bindings[key]
	return ok && !kb.captured() && ebiten.IsKeyPressed(k)
}

func (kb *keyboard) JustReleased(key sim.Key) bool {
	k, ok := kb.bindings[key]
	return ok && !kb.captured() && inpututil.IsKeyJustReleased(k)
}
