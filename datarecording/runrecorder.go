package datarecording

import (
	"os"
	"strings"
	"time"

	"github.com/rs/xid"
)

const timeLayout = "2006-01-02 15:04:05.000000000"

// runInfo is one property of a simulator run.
type runInfo struct {
	RunID    string
	Property string
	Value    string
}

// A RunRecorder records facts about one simulator run, such as the command
// line, the cache geometry, and the final counters.
type RunRecorder struct {
	tableName string
	runID     string
	recorder  DataRecorder
	entries   []runInfo
}

// NewRunRecorder creates a RunRecorder that writes into the run_info table
// of the recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	r := &RunRecorder{
		tableName: "run_info",
		runID:     xid.New().String(),
		recorder:  recorder,
	}

	recorder.CreateTable(r.tableName, runInfo{})

	return r
}

// RunID returns the unique ID of the run.
func (r *RunRecorder) RunID() string {
	return r.runID
}

// Start records the start time and the command line.
func (r *RunRecorder) Start() {
	r.Set("Start Time", time.Now().Format(timeLayout))
	r.Set("Command", strings.Join(os.Args, " "))

	if wd, err := os.Getwd(); err == nil {
		r.Set("Working Directory", wd)
	}
}

// Set records a property of the run.
func (r *RunRecorder) Set(property, value string) {
	r.entries = append(r.entries, runInfo{
		RunID:    r.runID,
		Property: property,
		Value:    value,
	})
}

// End records the end time and writes all the properties.
func (r *RunRecorder) End() {
	r.Set("End Time", time.Now().Format(timeLayout))

	for _, entry := range r.entries {
		r.recorder.InsertData(r.tableName, entry)
	}

	r.entries = nil

	r.recorder.Flush()
}
