package evergreen

// syntheticInput is one queued gesture or action. Injected input goes
// through the same router and Apply paths as real input.
type syntheticInput struct {
	isGesture bool
	gesture   Gesture
	palmX     float64
	action    Action
}

// InjectGesture queues a classified gesture. The event is consumed on the
// next Step, one event per frame.
func (s *Scene) InjectGesture(g Gesture, palmX float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{
		isGesture: true,
		gesture:   g,
		palmX:     palmX,
	})
}

// InjectAction queues an action as if its key had been pressed.
func (s *Scene) InjectAction(a Action) {
	s.injectQueue = append(s.injectQueue, syntheticInput{action: a})
}

// InjectHold queues the same gesture for frames consecutive frames, the
// way a camera would report a held pose.
func (s *Scene) InjectHold(g Gesture, palmX float64, frames int) {
	for i := 0; i < frames; i++ {
		s.InjectGesture(g, palmX)
	}
}

// PendingInput returns the number of queued synthetic events.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjected pops one event from the inject queue and routes it.
// Returns true if an event was consumed.
func (s *Scene) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.isGesture {
		if err := s.router.Handle(evt.gesture, evt.palmX, s.elapsed); err != nil && s.debug {
			s.debugLogf("gesture %s: %v", evt.gesture, err)
		}
		return true
	}
	s.Apply(evt.action)
	return true
}
