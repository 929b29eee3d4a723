package evergreen

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Gesture string  `json:"gesture,omitempty"`
	PalmX   float64 `json:"palmX,omitempty"`
	Shape   string  `json:"shape,omitempty"`
	Key     string  `json:"key,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected gestures, actions, shape requests and
// screenshots across frames for automated visual testing. Attach to a
// Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner. Every step is checked up
// front so a typo fails at load time rather than mid-run.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.check(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) check() error {
	switch st.Action {
	case "screenshot", "wait":
		return nil
	case "gesture":
		_, err := ParseGesture(st.Gesture)
		return err
	case "hold":
		if st.Frames <= 0 {
			return fmt.Errorf("hold needs frames > 0")
		}
		_, err := ParseGesture(st.Gesture)
		return err
	case "shape":
		_, err := ParseShape(st.Shape)
		return err
	case "key":
		_, err := ParseAction(st.Key)
		return err
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step
// method is called from Scene.Step before injected input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Step.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "gesture":
		g, _ := ParseGesture(st.Gesture)
		s.InjectGesture(g, st.PalmX)
	case "hold":
		g, _ := ParseGesture(st.Gesture)
		s.InjectHold(g, st.PalmX, st.Frames)
	case "shape":
		shape, _ := ParseShape(st.Shape)
		s.RequestShape(shape)
	case "key":
		a, _ := ParseAction(st.Key)
		s.InjectAction(a)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
