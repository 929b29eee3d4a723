// Package ecs bridges evergreen scene events into a [Donburi] world.
//
// [NewDonburiSink] publishes morph notifications and photo reveals as typed
// Donburi events. Subscribe to [MorphEventType] or [RevealEventType] in your
// systems and drain them with ProcessEvents. [SyncPhotos] mirrors the photo
// wall into entities carrying a [Photo] component.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
