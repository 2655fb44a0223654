// Package cmd provides the command-line interface for csim.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/mem/addressing"
	"github.com/sarchlab/csim/mem/cache"
	"github.com/sarchlab/csim/mem/trace"
	"github.com/sarchlab/csim/sim/simulation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envDefaults maps flags to the environment variables that can provide
// their values. Values from a .env file in the working directory are loaded
// first.
var envDefaults = map[string]string{
	"set-bits":   "CSIM_S",
	"lines":      "CSIM_E",
	"block-bits": "CSIM_B",
	"trace":      "CSIM_TRACE",
	"modify":     "CSIM_MODIFY",
	"record":     "CSIM_RECORD",
	"results":    "CSIM_RESULTS",
}

var requiredFlags = []string{"set-bits", "lines", "block-bits", "trace"}

type options struct {
	geometry     addressing.Geometry
	tracePath    string
	verbose      bool
	modifyPolicy simulation.ModifyPolicy
	recordPath   string
	resultsPath  string
}

// NewRootCmd creates the csim command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csim",
		Short: "csim replays a memory trace against a set-associative cache.",
		Long: `csim replays a valgrind memory trace against a set-associative ` +
			`cache with LRU replacement and reports the number of hits, ` +
			`misses, and evictions.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseOptions(cmd.Flags())
			if err != nil {
				return err
			}

			return run(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.Flags()
	flags.IntP("set-bits", "s", 0, "Number of set index bits (2^s sets)")
	flags.IntP("lines", "E", 0, "Number of lines per set (associativity)")
	flags.IntP("block-bits", "b", 0, "Number of block bits (2^b byte blocks)")
	flags.StringP("trace", "t", "", "Trace file to replay")
	flags.BoolP("verbose", "v", false, "Print the outcome of every record")
	flags.String("modify", "single",
		`How a modify record probes the cache: "single" or "load-store"`)
	flags.String("record", "",
		"Record every access into this SQLite database (without suffix)")
	flags.String("results", "",
		`Also write "hits misses evictions" into this file`)

	return rootCmd
}

// Execute runs the csim command with the process arguments.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	return err
}

func applyEnvDefaults(flags *pflag.FlagSet) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	for flagName, envName := range envDefaults {
		if flags.Changed(flagName) {
			continue
		}

		value, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		if err := flags.Set(flagName, value); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

func parseOptions(flags *pflag.FlagSet) (options, error) {
	if err := applyEnvDefaults(flags); err != nil {
		return options{}, err
	}

	var missing []string
	for _, name := range requiredFlags {
		if !flags.Changed(name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return options{}, fmt.Errorf("missing required options: %s",
			strings.Join(missing, ", "))
	}

	var opts options
	opts.geometry.SetBits, _ = flags.GetInt("set-bits")
	opts.geometry.Associativity, _ = flags.GetInt("lines")
	opts.geometry.BlockBits, _ = flags.GetInt("block-bits")
	opts.tracePath, _ = flags.GetString("trace")
	opts.verbose, _ = flags.GetBool("verbose")
	opts.recordPath, _ = flags.GetString("record")
	opts.resultsPath, _ = flags.GetString("results")

	if err := opts.geometry.Validate(); err != nil {
		return options{}, err
	}

	modify, _ := flags.GetString("modify")
	policy, err := simulation.ParseModifyPolicy(modify)
	if err != nil {
		return options{}, err
	}

	opts.modifyPolicy = policy

	return opts, nil
}

func run(opts options, stdout, stderr io.Writer) error {
	traceFile, err := os.Open(opts.tracePath)
	if err != nil {
		return err
	}
	defer traceFile.Close()

	c := cache.MakeBuilder().WithGeometry(opts.geometry).Build("Cache")

	builder := simulation.MakeBuilder().
		WithCache(c).
		WithGeometry(opts.geometry).
		WithModifyPolicy(opts.modifyPolicy).
		WithLogger(log.New(stderr, "csim: ", 0))

	if opts.verbose {
		builder = builder.WithRecordObserver(printRecord(stdout))
	}

	var runRecorder *datarecording.RunRecorder
	if opts.recordPath != "" {
		recorder, err := datarecording.New(opts.recordPath)
		if err != nil {
			return err
		}
		defer recorder.Close()

		c.AcceptHook(trace.NewDBTracer(recorder))
		runRecorder = startRunRecord(recorder, opts)
	}

	simulator := builder.Build()

	counters, err := simulator.Run(trace.NewReader(traceFile))
	if err != nil {
		err = fmt.Errorf("reading %s: %w", opts.tracePath, err)
	}

	if runRecorder != nil {
		endRunRecord(runRecorder, counters, simulator.Skipped(), err)
	}

	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, counters)

	if opts.resultsPath != "" {
		return writeResults(opts.resultsPath, counters)
	}

	return nil
}

func printRecord(w io.Writer) simulation.RecordObserver {
	return func(rec trace.Record, outcomes []cache.Outcome) {
		words := make([]string, 0, len(outcomes)+1)
		words = append(words, rec.String())

		for _, o := range outcomes {
			words = append(words, o.String())
		}

		fmt.Fprintln(w, strings.Join(words, " "))
	}
}

func startRunRecord(
	recorder datarecording.DataRecorder,
	opts options,
) *datarecording.RunRecorder {
	r := datarecording.NewRunRecorder(recorder)
	r.Start()
	r.Set("Geometry", opts.geometry.String())
	r.Set("Cache Size", strconv.FormatUint(opts.geometry.TotalSize(), 10))
	r.Set("Trace", opts.tracePath)
	r.Set("Modify Policy", opts.modifyPolicy.String())

	return r
}

func endRunRecord(
	r *datarecording.RunRecorder,
	counters simulation.Counters,
	skipped int,
	runErr error,
) {
	if runErr != nil {
		r.Set("Error", runErr.Error())
	}

	r.Set("Hits", strconv.FormatUint(counters.Hits, 10))
	r.Set("Misses", strconv.FormatUint(counters.Misses, 10))
	r.Set("Evictions", strconv.FormatUint(counters.Evictions, 10))
	r.Set("Skipped Lines", strconv.Itoa(skipped))
	r.Set("Hit Rate", strconv.FormatFloat(counters.HitRate(), 'f', 6, 64))
	r.End()
}

func writeResults(path string, counters simulation.Counters) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := counters.WriteResults(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
