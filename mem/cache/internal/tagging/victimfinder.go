package tagging

// A VictimFinder decides which block should be evicted from a full set.
type VictimFinder interface {
	FindVictim(set *Set) Block
}

// LRUVictimFinder evicts the least recently used block.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns the block with the largest age. Among blocks of the same
// age, the one with the lowest way ID wins.
func (e *LRUVictimFinder) FindVictim(set *Set) Block {
	victim := set.Blocks[0]
	for _, block := range set.Blocks[1:] {
		if block.Age > victim.Age {
			victim = block
		}
	}

	return victim
}
