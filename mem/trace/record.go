// Package trace reads valgrind-style memory traces and records what a cache
// does with them.
package trace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Op is the kind of memory operation in a trace record.
type Op byte

// The operations that can appear in a trace.
const (
	OpInstruction Op = 'I'
	OpLoad        Op = 'L'
	OpStore       Op = 'S'
	OpModify      Op = 'M'
)

func (o Op) String() string {
	return string(o)
}

// IsData returns false for instruction fetches, which the simulator skips.
func (o Op) IsData() bool {
	return o == OpLoad || o == OpStore || o == OpModify
}

// A Record is one line of a trace.
type Record struct {
	Op      Op
	Address uint64
	Size    int
}

func (r Record) String() string {
	return fmt.Sprintf("%s %x,%d", r.Op, r.Address, r.Size)
}

var (
	errMissingFields = errors.New("expected \"op address,size\"")
	errUnknownOp     = errors.New("unknown operation")
	errBadAddress    = errors.New("bad address")
	errBadSize       = errors.New("bad size")
)

// ParseRecord parses a line such as " L 7ff000398,8".
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Record{}, errMissingFields
	}

	if len(fields[0]) != 1 {
		return Record{}, fmt.Errorf("%w %q", errUnknownOp, fields[0])
	}

	op := Op(fields[0][0])
	if op != OpInstruction && !op.IsData() {
		return Record{}, fmt.Errorf("%w %q", errUnknownOp, fields[0])
	}

	addrText, sizeText, found := strings.Cut(fields[1], ",")
	if !found {
		return Record{}, errMissingFields
	}

	addr, err := strconv.ParseUint(addrText, 16, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w %q: %v", errBadAddress, addrText, err)
	}

	size, err := strconv.Atoi(sizeText)
	if err != nil || size <= 0 {
		return Record{}, fmt.Errorf("%w %q", errBadSize, sizeText)
	}

	return Record{Op: op, Address: addr, Size: size}, nil
}
