// Package simulation replays memory traces against a cache model.
package simulation

import (
	"errors"
	"io"
	"log"

	"github.com/sarchlab/csim/mem/addressing"
	"github.com/sarchlab/csim/mem/cache"
	"github.com/sarchlab/csim/mem/trace"
)

// Cache is the model the simulator probes.
type Cache interface {
	Access(tag, setIndex uint64) cache.Outcome
}

// A RecordObserver is told about every record the simulator applies and the
// outcome of each probe it issued.
type RecordObserver func(rec trace.Record, outcomes []cache.Outcome)

// A Simulator feeds trace records to a cache one at a time, in order.
type Simulator struct {
	cache        Cache
	decoder      addressing.Decoder
	modifyPolicy ModifyPolicy
	observers    []RecordObserver
	logger       *log.Logger

	skipped int
}

// Skipped returns the number of trace lines ignored because they were
// malformed.
func (s *Simulator) Skipped() int {
	return s.skipped
}

// Apply issues the probes of one record and returns their outcomes.
// Instruction fetches issue no probe.
func (s *Simulator) Apply(rec trace.Record) []cache.Outcome {
	if !rec.Op.IsData() {
		return nil
	}

	n := 1
	if rec.Op == trace.OpModify {
		n = s.modifyPolicy.probes()
	}

	tag, setIndex := s.decoder.Decode(rec.Address)

	outcomes := make([]cache.Outcome, n)
	for i := range outcomes {
		outcomes[i] = s.cache.Access(tag, setIndex)
	}

	for _, o := range s.observers {
		o(rec, outcomes)
	}

	return outcomes
}

// Replay applies the records in order and counts the outcomes.
func (s *Simulator) Replay(records []trace.Record) Counters {
	var counters Counters

	for _, rec := range records {
		for _, o := range s.Apply(rec) {
			counters.Record(o)
		}
	}

	return counters
}

// Run reads the whole trace and counts the outcomes. Malformed lines are
// logged and skipped. Any other read error stops the run and is returned with
// the counters accumulated so far.
func (s *Simulator) Run(r *trace.Reader) (Counters, error) {
	var counters Counters

	for {
		rec, err := r.Next()
		if err == io.EOF {
			return counters, nil
		}

		var parseErr *trace.ParseError
		if errors.As(err, &parseErr) {
			s.skipped++
			s.logger.Printf("skipping %v", parseErr)

			continue
		}

		if err != nil {
			return counters, err
		}

		for _, o := range s.Apply(rec) {
			counters.Record(o)
		}
	}
}
