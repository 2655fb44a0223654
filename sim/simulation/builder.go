package simulation

import (
	"io"
	"log"

	"github.com/sarchlab/csim/mem/addressing"
	"github.com/sarchlab/csim/mem/cache"
)

// Builder can build simulators.
type Builder struct {
	cache        Cache
	geometry     addressing.Geometry
	modifyPolicy ModifyPolicy
	observers    []RecordObserver
	logger       *log.Logger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		modifyPolicy: ModifyAsSingleAccess,
		logger:       log.New(io.Discard, "", 0),
	}
}

// WithCache sets the cache that the simulator probes.
func (b Builder) WithCache(c Cache) Builder {
	b.cache = c
	return b
}

// WithGeometry sets the geometry used to decode addresses. It must match the
// geometry of the cache.
func (b Builder) WithGeometry(g addressing.Geometry) Builder {
	b.geometry = g
	return b
}

// WithModifyPolicy sets how modify records are replayed.
func (b Builder) WithModifyPolicy(p ModifyPolicy) Builder {
	b.modifyPolicy = p
	return b
}

// WithRecordObserver adds an observer that sees every applied record.
func (b Builder) WithRecordObserver(o RecordObserver) Builder {
	b.observers = append(b.observers[:len(b.observers):len(b.observers)], o)
	return b
}

// WithLogger sets the logger that reports skipped trace lines.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a simulator. Without a cache given, it builds an LRU cache of
// the configured geometry.
func (b Builder) Build() *Simulator {
	c := b.cache
	if c == nil {
		c = cache.MakeBuilder().WithGeometry(b.geometry).Build("Cache")
	}

	return &Simulator{
		cache:        c,
		decoder:      addressing.NewDecoder(b.geometry),
		modifyPolicy: b.modifyPolicy,
		observers:    b.observers,
		logger:       b.logger,
	}
}
