package cache

// Outcome is the result of one access to the cache.
type Outcome int

// The possible outcomes of an access.
const (
	Hit Outcome = iota
	MissWithInsert
	MissWithEviction
)

// IsMiss returns true if the access did not find the block.
func (o Outcome) IsMiss() bool {
	return o == MissWithInsert || o == MissWithEviction
}

// IsEviction returns true if the access replaced a valid block.
func (o Outcome) IsEviction() bool {
	return o == MissWithEviction
}

// String returns the outcome the way the cachelab reference simulator prints
// it in verbose mode.
func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case MissWithInsert:
		return "miss"
	case MissWithEviction:
		return "miss eviction"
	default:
		return "unknown"
	}
}
