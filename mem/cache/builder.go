package cache

import (
	"log"

	"github.com/sarchlab/csim/mem/addressing"
	"github.com/sarchlab/csim/mem/cache/internal/tagging"
)

// Builder can build caches.
type Builder struct {
	setBits          int
	wayAssociativity int
	blockBits        int
	replaceStrategy  string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		setBits:          4,
		wayAssociativity: 1,
		blockBits:        4,
		replaceStrategy:  "lru",
	}
}

// WithSetBits sets the number of set-index bits of the builder.
func (b Builder) WithSetBits(setBits int) Builder {
	b.setBits = setBits
	return b
}

// WithWayAssociativity sets the way associativity of the builder.
func (b Builder) WithWayAssociativity(wayAssociativity int) Builder {
	b.wayAssociativity = wayAssociativity
	return b
}

// WithBlockBits sets the number of block-offset bits of the builder.
func (b Builder) WithBlockBits(blockBits int) Builder {
	b.blockBits = blockBits
	return b
}

// WithReplaceStrategy sets how a victim is chosen in a full set. Only "lru"
// is supported.
func (b Builder) WithReplaceStrategy(replaceStrategy string) Builder {
	b.replaceStrategy = replaceStrategy
	return b
}

// WithGeometry copies all three dimensions from a geometry.
func (b Builder) WithGeometry(g addressing.Geometry) Builder {
	b.setBits = g.SetBits
	b.wayAssociativity = g.Associativity
	b.blockBits = g.BlockBits

	return b
}

// Geometry returns the geometry the builder is configured with.
func (b Builder) Geometry() addressing.Geometry {
	return addressing.Geometry{
		SetBits:       b.setBits,
		Associativity: b.wayAssociativity,
		BlockBits:     b.blockBits,
	}
}

// Build builds a cache. The geometry must be valid; callers that take the
// geometry from users should call Geometry().Validate() first.
func (b Builder) Build(name string) *Comp {
	g := b.Geometry()
	if err := g.Validate(); err != nil {
		log.Panicf("cannot build cache %s: %v", name, err)
	}

	comp := &Comp{
		name:         name,
		tags:         tagging.NewTagArray(g.NumSets(), g.Associativity),
		victimFinder: b.createVictimFinder(),
	}

	return comp
}

func (b Builder) createVictimFinder() tagging.VictimFinder {
	if b.replaceStrategy != "lru" {
		log.Panicf("replace strategy %s is not supported.", b.replaceStrategy)
	}

	return tagging.NewLRUVictimFinder()
}
