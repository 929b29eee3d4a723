package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MorphEventType carries transition start and settle notifications.
var MorphEventType = events.NewEventType[evergreen.MorphEvent]()

// RevealEventType carries accepted photo spotlights.
var RevealEventType = events.NewEventType[evergreen.PhotoRevealEvent]()

// ShapeState is the singleton component tracking the morph.
type ShapeState struct {
	Target  evergreen.Shape
	Settled bool
	Blend   float64
}

// ShapeComponent is the component type of the shape singleton.
var ShapeComponent = donburi.NewComponentType[ShapeState]()

type donburiSink struct {
	world donburi.World
	shape donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Besides
// publishing events it keeps one entity with a ShapeComponent up to date.
func NewDonburiSink(world donburi.World) evergreen.EventSink {
	return &donburiSink{
		world: world,
		shape: world.Create(ShapeComponent),
	}
}

func (s *donburiSink) EmitMorph(event evergreen.MorphEvent) {
	if s.world.Valid(s.shape) {
		ShapeComponent.SetValue(s.world.Entry(s.shape), ShapeState{
			Target:  event.Shape,
			Settled: event.Kind == evergreen.MorphSettled,
			Blend:   event.Blend,
		})
	}
	MorphEventType.Publish(s.world, event)
}

func (s *donburiSink) EmitReveal(event evergreen.PhotoRevealEvent) {
	RevealEventType.Publish(s.world, event)
}

// CurrentShape reads the shape singleton. ok is false if the world holds no
// ShapeComponent entity.
func CurrentShape(world donburi.World) (ShapeState, bool) {
	entry, ok := ShapeComponent.First(world)
	if !ok {
		return ShapeState{}, false
	}
	return *ShapeComponent.Get(entry), true
}
