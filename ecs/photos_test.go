package ecs

import (
	"testing"

	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
)

func TestSyncPhotos(t *testing.T) {
	world := donburi.NewWorld()
	wall := evergreen.NewPhotoWall(evergreen.DefaultConfig().Photos, nil)
	wall.Add("a", nil)
	wall.Add("b", nil)

	if n := SyncPhotos(world, wall); n != 2 {
		t.Fatalf("SyncPhotos = %d, want 2", n)
	}

	// Idempotent.
	if n := SyncPhotos(world, wall); n != 2 {
		t.Fatalf("second SyncPhotos = %d, want 2", n)
	}

	names := map[string]bool{}
	photoQuery.Each(world, func(e *donburi.Entry) {
		names[PhotoComponent.Get(e).Name] = true
	})
	if !names["a"] || !names["b"] {
		t.Errorf("names = %v", names)
	}

	wall.Clear()
	if n := SyncPhotos(world, wall); n != 0 {
		t.Errorf("after Clear, SyncPhotos = %d, want 0", n)
	}
}

func TestSyncPhotos_TracksVisibility(t *testing.T) {
	world := donburi.NewWorld()
	wall := evergreen.NewPhotoWall(evergreen.DefaultConfig().Photos, nil)
	wall.Add("a", nil)
	SyncPhotos(world, wall)

	wall.HandleMorph(evergreen.MorphEvent{Kind: evergreen.MorphSettled, Shape: evergreen.ShapeScatter, Blend: 1})
	SyncPhotos(world, wall)

	entry, ok := PhotoComponent.First(world)
	if !ok {
		t.Fatal("no photo entity")
	}
	if !PhotoComponent.Get(entry).Visible {
		t.Error("photo entity not visible after scatter settled")
	}
}
