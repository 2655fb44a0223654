// Package cache provides a set-associative cache model with true-LRU
// replacement.
package cache

import (
	"log"

	"github.com/sarchlab/csim/mem/cache/internal/tagging"
	"github.com/sarchlab/csim/sim/hooking"
)

// HookPosAccess marks the completion of a cache access. The hook item is an
// AccessInfo.
var HookPosAccess = &hooking.HookPos{Name: "CacheAccess"}

// AccessInfo describes what one access did to the tag array.
type AccessInfo struct {
	Tag     uint64
	SetID   int
	WayID   int
	Outcome Outcome

	// EvictedTag is only meaningful when Outcome is MissWithEviction.
	EvictedTag uint64
}

// A Comp is a set-associative cache. It only tracks which blocks are
// resident and never holds data.
type Comp struct {
	hooking.HookableBase

	name         string
	tags         tagging.TagArray
	victimFinder tagging.VictimFinder
}

// Name returns the name of the cache.
func (c *Comp) Name() string {
	return c.name
}

// NumSets returns the number of sets of the cache.
func (c *Comp) NumSets() int {
	return c.tags.NumSets()
}

// NumWays returns the number of lines in each set.
func (c *Comp) NumWays() int {
	return c.tags.NumWays()
}

// Access looks up the tag in the set and updates the cache state. The set
// index must be smaller than the number of sets.
func (c *Comp) Access(tag, setIndex uint64) Outcome {
	setID := c.mustBeValidSet(setIndex)

	info := c.access(tag, setID)
	c.traceAccess(info)

	return info.Outcome
}

func (c *Comp) access(tag uint64, setID int) AccessInfo {
	block, found := c.tags.Lookup(setID, tag)
	if found {
		c.tags.Visit(block)

		return AccessInfo{
			Tag:     tag,
			SetID:   setID,
			WayID:   block.WayID,
			Outcome: Hit,
		}
	}

	block, found = c.tags.FindEmpty(setID)
	if found {
		c.install(block, tag)

		return AccessInfo{
			Tag:     tag,
			SetID:   setID,
			WayID:   block.WayID,
			Outcome: MissWithInsert,
		}
	}

	victim := c.victimFinder.FindVictim(c.tags.GetSet(setID))
	c.install(victim, tag)

	return AccessInfo{
		Tag:        tag,
		SetID:      setID,
		WayID:      victim.WayID,
		Outcome:    MissWithEviction,
		EvictedTag: victim.Tag,
	}
}

func (c *Comp) install(block tagging.Block, tag uint64) {
	block.Tag = tag
	block.IsValid = true
	c.tags.Update(block)
	c.tags.Visit(block)
}

// A Line is a snapshot of one cache line.
type Line struct {
	Valid bool
	Tag   uint64
	Age   uint64
}

// Lines returns a snapshot of the lines of a set, in way order.
func (c *Comp) Lines(setIndex uint64) []Line {
	setID := c.mustBeValidSet(setIndex)
	blocks := c.tags.GetSet(setID).Blocks

	lines := make([]Line, len(blocks))
	for i, b := range blocks {
		lines[i] = Line{Valid: b.IsValid, Tag: b.Tag, Age: b.Age}
	}

	return lines
}

// Reset invalidates every line so that the cache can replay another trace.
func (c *Comp) Reset() {
	c.tags.Reset()
}

func (c *Comp) mustBeValidSet(setIndex uint64) int {
	if setIndex >= uint64(c.tags.NumSets()) {
		log.Panicf("%s: set index %d out of range, cache has %d sets",
			c.name, setIndex, c.tags.NumSets())
	}

	return int(setIndex)
}

func (c *Comp) traceAccess(info AccessInfo) {
	if c.NumHooks() == 0 {
		return
	}

	ctx := hooking.HookCtx{
		Domain: c,
		Pos:    HookPosAccess,
		Item:   info,
	}

	c.InvokeHook(ctx)
}
