// Package tagging keeps the tag state of a set-associative cache.
package tagging

import (
	"log"
)

// TagArray stores the blocks of all the sets of a cache.
type TagArray interface {
	// Lookup returns the valid block in the set that holds the tag.
	Lookup(setID int, tag uint64) (Block, bool)

	// FindEmpty returns the first invalid block of the set, in way order.
	FindEmpty(setID int) (Block, bool)

	// Update writes the block back into its set and way.
	Update(block Block)

	// Visit marks the block as the most recently used one of its set.
	Visit(block Block)

	// GetSet returns the set with the given ID.
	GetSet(setID int) *Set

	// NumSets returns the number of sets.
	NumSets() int

	// NumWays returns the number of blocks in each set.
	NumWays() int

	// Reset invalidates all the blocks.
	Reset()
}

// NewTagArray creates a tag array with all blocks invalid.
func NewTagArray(numSets, numWays int) TagArray {
	t := &tagArrayImpl{
		numSets: numSets,
		numWays: numWays,
	}

	t.Reset()

	return t
}

// A Block is the tag information associated with a cache line.
type Block struct {
	SetID   int
	WayID   int
	Tag     uint64
	IsValid bool

	// Age counts the accesses to the set since the block was last touched.
	// The most recently used block has age 0.
	Age uint64
}

// A Set is a list of blocks where a certain piece of memory can be stored.
type Set struct {
	Blocks []Block
}

type tagArrayImpl struct {
	numSets int
	numWays int
	sets    []Set
}

func (t *tagArrayImpl) NumSets() int {
	return t.numSets
}

func (t *tagArrayImpl) NumWays() int {
	return t.numWays
}

func (t *tagArrayImpl) GetSet(setID int) *Set {
	if setID < 0 || setID >= t.numSets {
		log.Panicf("set %d out of range [0, %d)", setID, t.numSets)
	}

	return &t.sets[setID]
}

func (t *tagArrayImpl) Lookup(setID int, tag uint64) (Block, bool) {
	set := t.GetSet(setID)
	for _, block := range set.Blocks {
		if block.IsValid && block.Tag == tag {
			return block, true
		}
	}

	return Block{}, false
}

func (t *tagArrayImpl) FindEmpty(setID int) (Block, bool) {
	set := t.GetSet(setID)
	for _, block := range set.Blocks {
		if !block.IsValid {
			return block, true
		}
	}

	return Block{}, false
}

func (t *tagArrayImpl) Update(block Block) {
	t.GetSet(block.SetID).Blocks[block.WayID] = block
}

// Visit resets the age of the block and ages every other block in the set.
func (t *tagArrayImpl) Visit(block Block) {
	set := t.GetSet(block.SetID)
	for i := range set.Blocks {
		if i == block.WayID {
			set.Blocks[i].Age = 0
			continue
		}

		set.Blocks[i].Age++
	}
}

func (t *tagArrayImpl) Reset() {
	t.sets = make([]Set, t.numSets)
	for i := range t.sets {
		t.sets[i].Blocks = make([]Block, t.numWays)
		for j := range t.sets[i].Blocks {
			t.sets[i].Blocks[j] = Block{
				SetID: i,
				WayID: j,
			}
		}
	}
}
