package evergreen

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a discrete trigger a key, a script step or an injected event
// can fire.
type Action uint8

const (
	ActionTree       Action = iota // request the tree shape
	ActionScatter                  // request the starfield
	ActionToggle                   // request whichever shape is not committed
	ActionSpotlight                // debounced photo spotlight
	ActionScreenshot               // queue a screenshot
	ActionHUD                      // toggle the status overlay
)

var actionNames = [...]string{
	ActionTree:       "tree",
	ActionScatter:    "scatter",
	ActionToggle:     "toggle",
	ActionSpotlight:  "spotlight",
	ActionScreenshot: "screenshot",
	ActionHUD:        "hud",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction maps an action name to an Action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("parse action: unknown action %q", name)
}

// keyBinding maps a key to an action.
type keyBinding struct {
	key    ebiten.Key
	action Action
}

func defaultBindings() []keyBinding {
	return []keyBinding{
		{ebiten.KeyT, ActionTree},
		{ebiten.KeyG, ActionScatter},
		{ebiten.KeyS, ActionScatter},
		{ebiten.KeySpace, ActionToggle},
		{ebiten.KeyP, ActionSpotlight},
		{ebiten.KeyF12, ActionScreenshot},
		{ebiten.KeyH, ActionHUD},
	}
}

// BindKey maps key to action, replacing any existing binding for key.
func (s *Scene) BindKey(key ebiten.Key, action Action) {
	for i := range s.bindings {
		if s.bindings[i].key == key {
			s.bindings[i].action = action
			return
		}
	}
	s.bindings = append(s.bindings, keyBinding{key, action})
}

// UnbindKey removes the binding for key, if any.
func (s *Scene) UnbindKey(key ebiten.Key) {
	for i := range s.bindings {
		if s.bindings[i].key == key {
			s.bindings = append(s.bindings[:i], s.bindings[i+1:]...)
			return
		}
	}
}

// processKeys fires the action of every binding whose key went down this tick.
func (s *Scene) processKeys() {
	for _, b := range s.bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			s.Apply(b.action)
		}
	}
}

// Apply fires an action immediately. Spotlight rejections (empty wall,
// cooldown) are not errors from the caller's point of view and are only
// reported on the debug output.
func (s *Scene) Apply(a Action) {
	switch a {
	case ActionTree:
		s.morph.RequestShape(ShapeTree)
	case ActionScatter:
		s.morph.RequestShape(ShapeScatter)
	case ActionToggle:
		if s.morph.Target() == ShapeTree {
			s.morph.RequestShape(ShapeScatter)
		} else {
			s.morph.RequestShape(ShapeTree)
		}
	case ActionSpotlight:
		if _, err := s.photos.Spotlight(s.elapsed); err != nil && s.debug {
			s.debugLogf("spotlight skipped: %v", err)
		}
	case ActionScreenshot:
		s.Screenshot("key")
	case ActionHUD:
		s.showHUD = !s.showHUD
	}
}
