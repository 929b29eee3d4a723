package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
)

// HandleKey applies a key event to s. It returns false when the key asks
// to quit.
//
// Letter keys map onto scene actions. The f and o keys and the arrow keys
// emulate hand gestures for terminals without a camera: arrows are an open
// palm held left or right of center.
func HandleKey(s *evergreen.Scene, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		_ = s.HandleGesture(evergreen.GestureOpen, 0.2)
		return true
	case tcell.KeyRight:
		_ = s.HandleGesture(evergreen.GestureOpen, 0.8)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 't':
		s.Apply(evergreen.ActionTree)
	case 'g', 's':
		s.Apply(evergreen.ActionScatter)
	case ' ':
		s.Apply(evergreen.ActionToggle)
	case 'p':
		s.Apply(evergreen.ActionSpotlight)
	case 'f':
		_ = s.HandleGesture(evergreen.GestureFist, 0.5)
	case 'o':
		_ = s.HandleGesture(evergreen.GestureOpen, 0.5)
	}
	return true
}

// Run drives s on screen at tps steps per second until a quit key is
// pressed or stop is closed. The screen must be initialized; Run does not
// call Fini.
func Run(s *evergreen.Scene, r *Renderer, tps int, stop <-chan struct{}) error {
	if tps <= 0 {
		tps = 30
	}
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go r.Screen.ChannelEvents(events, quit)

	tick := time.NewTicker(time.Second / time.Duration(tps))
	defer tick.Stop()
	dt := float32(1.0 / float64(tps))

	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !HandleKey(s, ev) {
					return nil
				}
			case *tcell.EventResize:
				r.Screen.Sync()
			}
		case <-tick.C:
			s.Step(dt)
			r.Draw(s)
		}
	}
}
