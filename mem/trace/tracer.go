package trace

import (
	"fmt"
	"log"

	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/mem/cache"
	"github.com/sarchlab/csim/sim/hooking"
)

// cacheAccessEntry represents a cache access in the database. Tags are kept
// as hex strings because SQLite cannot hold the full uint64 range.
type cacheAccessEntry struct {
	Seq        int64  `json:"seq"`
	Location   string `json:"location"`
	SetID      int    `json:"set_id"`
	WayID      int    `json:"way_id"`
	Tag        string `json:"tag"`
	Outcome    string `json:"outcome"`
	EvictedTag string `json:"evicted_tag"`
}

// A tracer is a hook that writes every cache access to a logger.
type tracer struct {
	logger *log.Logger
}

// NewTracer creates a hook that logs each cache access as
// "location, set, way, tag, outcome[, evicted tag]".
func NewTracer(logger *log.Logger) hooking.Hook {
	return &tracer{logger: logger}
}

func (t *tracer) Func(ctx hooking.HookCtx) {
	info, ok := accessInfo(ctx)
	if !ok {
		return
	}

	if info.Outcome.IsEviction() {
		t.logger.Printf("%s, %d, %d, 0x%x, %s, 0x%x\n",
			location(ctx), info.SetID, info.WayID, info.Tag, info.Outcome,
			info.EvictedTag)

		return
	}

	t.logger.Printf("%s, %d, %d, 0x%x, %s\n",
		location(ctx), info.SetID, info.WayID, info.Tag, info.Outcome)
}

// A dbTracer is a hook that records every cache access into a database
// through a data recorder.
type dbTracer struct {
	tableName    string
	dataRecorder datarecording.DataRecorder
	seq          int64
}

// NewDBTracer creates a hook that records cache accesses into the
// cache_accesses table of the data recorder.
func NewDBTracer(dataRecorder datarecording.DataRecorder) hooking.Hook {
	t := &dbTracer{
		tableName:    "cache_accesses",
		dataRecorder: dataRecorder,
	}

	t.dataRecorder.CreateTable(t.tableName, cacheAccessEntry{})

	return t
}

func (t *dbTracer) Func(ctx hooking.HookCtx) {
	info, ok := accessInfo(ctx)
	if !ok {
		return
	}

	entry := cacheAccessEntry{
		Seq:      t.seq,
		Location: location(ctx),
		SetID:    info.SetID,
		WayID:    info.WayID,
		Tag:      fmt.Sprintf("0x%x", info.Tag),
		Outcome:  info.Outcome.String(),
	}

	if info.Outcome.IsEviction() {
		entry.EvictedTag = fmt.Sprintf("0x%x", info.EvictedTag)
	}

	t.seq++
	t.dataRecorder.InsertData(t.tableName, entry)
}

func accessInfo(ctx hooking.HookCtx) (cache.AccessInfo, bool) {
	if ctx.Pos != cache.HookPosAccess {
		return cache.AccessInfo{}, false
	}

	info, ok := ctx.Item.(cache.AccessInfo)

	return info, ok
}

type named interface {
	Name() string
}

func location(ctx hooking.HookCtx) string {
	if n, ok := ctx.Domain.(named); ok {
		return n.Name()
	}

	return ""
}
