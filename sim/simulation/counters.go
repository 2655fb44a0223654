package simulation

import (
	"fmt"
	"io"

	"github.com/sarchlab/csim/mem/cache"
)

// Counters accumulates the outcomes of a replay.
type Counters struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Record counts one outcome. An eviction is also a miss.
func (c *Counters) Record(o cache.Outcome) {
	switch o {
	case cache.Hit:
		c.Hits++
	case cache.MissWithInsert:
		c.Misses++
	case cache.MissWithEviction:
		c.Misses++
		c.Evictions++
	}
}

// Accesses returns the number of cache probes counted.
func (c Counters) Accesses() uint64 {
	return c.Hits + c.Misses
}

// HitRate returns the fraction of probes that hit. It is 0 when nothing was
// counted.
func (c Counters) HitRate() float64 {
	if c.Accesses() == 0 {
		return 0
	}

	return float64(c.Hits) / float64(c.Accesses())
}

func (c Counters) String() string {
	return fmt.Sprintf("hits:%d misses:%d evictions:%d",
		c.Hits, c.Misses, c.Evictions)
}

// WriteResults writes the counters as "hits misses evictions", the format
// the cachelab driver reads back from its results file.
func (c Counters) WriteResults(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d %d\n", c.Hits, c.Misses, c.Evictions)
	return err
}
