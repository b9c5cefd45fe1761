// Package scene mirrors an organism snapshot into an ECS world that the
// renderers iterate.
package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/agesim/components"
	"github.com/pthm-cable/agesim/genome"
	"github.com/pthm-cable/agesim/organism"
)

// Cell is a read-only view of one scene entity.
type Cell struct {
	X, Y      int
	Age       float64
	Genome    genome.Genome
	Senescent bool
}

// World holds one entity per cell index of the last synced snapshot.
type World struct {
	world *ecs.World

	cellMapper *ecs.Map3[components.Position, components.Age, components.Genome]
	cellFilter *ecs.Filter3[components.Position, components.Age, components.Genome]

	// entities[i] mirrors cell i
	entities []ecs.Entity
	maxAge   float64
}

// New creates an empty scene.
func New() *World {
	world := ecs.NewWorld()
	return &World{
		world:      world,
		cellMapper: ecs.NewMap3[components.Position, components.Age, components.Genome](world),
		cellFilter: ecs.NewFilter3[components.Position, components.Age, components.Genome](world),
	}
}

// Sync updates the scene to o. Existing entities are updated in place, cells
// spawned since the last sync get new entities and surplus entities left by a
// restart are removed.
func (w *World) Sync(o organism.Organism) {
	n := len(o.Coordinates)
	for len(w.entities) > n {
		last := len(w.entities) - 1
		w.world.RemoveEntity(w.entities[last])
		w.entities = w.entities[:last]
	}

	w.maxAge = 0
	for i := 0; i < n; i++ {
		pos := components.Position{X: o.Coordinates[i].X, Y: o.Coordinates[i].Y}
		age := components.Age{Value: o.Ages[i]}
		gen := components.Genome{Sequence: o.Genomes[i]}
		if i < len(o.Senescent) {
			gen.Senescent = o.Senescent[i]
		}

		if age.Value > w.maxAge {
			w.maxAge = age.Value
		}

		if i < len(w.entities) {
			p, a, g := w.cellMapper.Get(w.entities[i])
			*p, *a, *g = pos, age, gen
			continue
		}
		w.entities = append(w.entities, w.cellMapper.NewEntity(&pos, &age, &gen))
	}
}

// Each calls fn for every cell in the scene.
func (w *World) Each(fn func(Cell)) {
	query := w.cellFilter.Query()
	for query.Next() {
		pos, age, gen := query.Get()
		fn(Cell{
			X:         pos.X,
			Y:         pos.Y,
			Age:       age.Value,
			Genome:    gen.Sequence,
			Senescent: gen.Senescent,
		})
	}
}

// Len returns the number of cells in the scene.
func (w *World) Len() int {
	return len(w.entities)
}

// MaxAge returns the oldest age seen by the last Sync.
func (w *World) MaxAge() float64 {
	return w.maxAge
}
