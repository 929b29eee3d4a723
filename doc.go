// Package evergreen renders a field of a few thousand glowing particles that
// morphs between two shapes: a layered spiral Christmas tree and a uniform
// spherical starfield.
//
// # Quick start
//
//	cfg, err := evergreen.LoadConfigFromEnv()
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene, err := evergreen.NewScene(cfg, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(evergreen.Run(scene, evergreen.RunConfig{Title: "Tree"}))
//
// # Model
//
// Both shapes are precomputed once per particle by [Generate] into a
// [Field]. Per frame the only thing that changes is a scalar blend factor in
// [0, 1] driven by a [Morph]: 0 is the tree, 1 is the starfield. Every
// rendered position is
//
//	lerp(tree[i], scatter[i], blend) + breathing(t, i) * (1 - blend)
//
// written by [Interpolate] into the [Buffers] the renderer reads. A new
// request reverses an in-flight transition smoothly from the current blend.
//
// # Input
//
// Input arrives as discrete gestures ([GestureFist], [GestureOpen],
// [GesturePinch]) from any source. [Classify] turns a 21-point hand skeleton
// into a gesture and [GestureRouter] maps gestures onto the morph, the
// camera spin and the photo spotlight. Keyboard bindings, [Scene.InjectGesture]
// and JSON scripts loaded with [LoadTestScript] drive the same paths.
//
// # Photos
//
// A [PhotoWall] holds optional user images. They appear once the starfield
// has settled and hide as soon as the tree comes back. A pinch spotlights a
// random photo, debounced by a [Cooldown].
//
// # Configuration
//
// [DefaultConfig] carries every tunable; [LoadConfigFromEnv] overlays
// EVERGREEN_* environment variables. Debug mode prints timings to stderr.
//
// The evergreen/term package renders the same field to a terminal and
// evergreen/ecs forwards morph and reveal events into a Donburi world.
package evergreen
