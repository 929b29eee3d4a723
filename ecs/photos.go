package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Photo mirrors the placement of one photo wall item.
type Photo struct {
	ItemID  int
	Name    string
	Pos     evergreen.Vec3
	Scale   float64
	Visible bool
}

// PhotoComponent is the component type of mirrored photos.
var PhotoComponent = donburi.NewComponentType[Photo]()

var photoQuery = donburi.NewQuery(filter.Contains(PhotoComponent))

// SyncPhotos makes the world's Photo entities match wall: one entity per
// item, updated in place, with entities for removed items deleted. Returns
// the number of live photo entities.
func SyncPhotos(world donburi.World, wall *evergreen.PhotoWall) int {
	items := wall.Items()
	byID := make(map[int]*evergreen.PhotoItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var stale []donburi.Entity
	photoQuery.Each(world, func(entry *donburi.Entry) {
		p := PhotoComponent.Get(entry)
		it, ok := byID[p.ItemID]
		if !ok {
			stale = append(stale, entry.Entity())
			return
		}
		*p = photoOf(it)
		delete(byID, p.ItemID)
	})
	for _, e := range stale {
		world.Remove(e)
	}

	// Remaining items have no entity yet. Walk items to keep creation order.
	for _, it := range items {
		if _, ok := byID[it.ID]; !ok {
			continue
		}
		entry := world.Entry(world.Create(PhotoComponent))
		PhotoComponent.SetValue(entry, photoOf(it))
	}
	return photoQuery.Count(world)
}

func photoOf(it *evergreen.PhotoItem) Photo {
	return Photo{
		ItemID:  it.ID,
		Name:    it.Name,
		Pos:     it.Pos,
		Scale:   it.Scale,
		Visible: it.Visible,
	}
}
