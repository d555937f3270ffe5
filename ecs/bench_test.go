package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/boringgame/ecs"
)

func populate(storage *ecs.Storage, n int) {
	for i := range n {
		switch i % 3 {
		case 0:
			storage.Spawn(Position{X: float64(i)}, Velocity{DX: 1})
		case 1:
			storage.Spawn(Position{X: float64(i)}, Velocity{DX: 1}, Health{Current: i})
		default:
			storage.Spawn(Position{X: float64(i)})
		}
	}
}

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	b.ReportAllocs()
	for b.Loop() {
		storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	for _, n := range []int{100, 10_000} {
		storage := ecs.NewStorage(newTestRegistry())
		populate(storage, n)
		query := ecs.NewQuery[movers](storage)

		b.Run(fmt.Sprintf("entities=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				query.Execute()
				for item := range query.Values() {
					item.Position.X += item.Velocity.DX
				}
			}
		})
	}
}

func BenchmarkAttachMigrate(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	b.ReportAllocs()
	for b.Loop() {
		id := storage.Spawn(Position{})
		ecs.Attach(storage, id, Marker{})
		ecs.Detach[Marker](storage, id)
		storage.Delete(id)
	}
}
