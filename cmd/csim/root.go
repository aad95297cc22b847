package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/trace"
)

var (
	traceFile      string
	recordPath     string
	recordAccesses bool
)

var rootCmd = &cobra.Command{
	Use: "csim <num-sets> <ways-per-set> <block-size> " +
		"<write-allocate|no-write-allocate> <write-through|write-back> " +
		"<lru|fifo>",
	Short: "Replay a memory-access trace against a simulated " +
		"set-associative cache",
	Long: `csim replays a memory-access trace against a simulated
set-associative cache and reports hit, miss, and cycle totals.

The trace is read from stdin, or from a file with --trace, as a stream of
whitespace-separated triples:

    <op> <hex-address> <size>

where op is "l" for a load and "s" for a store. The size field is ignored.
Records with any other op are skipped.`,
	Args: cobra.ExactArgs(6),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&traceFile, "trace", "",
		"read the trace from a file instead of stdin")
	rootCmd.Flags().StringVar(&recordPath, "record", "",
		"record the run into a SQLite database at this path "+
			"(default $CSIM_RECORD)")
	rootCmd.Flags().BoolVar(&recordAccesses, "record-accesses", false,
		"also record every access into the database")
}

func run(cmd *cobra.Command, args []string) error {
	// The argument count is already checked. Errors past this point are
	// about the run itself, so skip the usage text.
	cmd.SilenceUsage = true

	config, err := parseConfig(args)
	if err != nil {
		return err
	}

	sim, err := cache.NewSimulator(config)
	if err != nil {
		return err
	}

	input := cmd.InOrStdin()
	if traceFile != "" {
		f, err := os.Open(traceFile)
		if err != nil {
			return err
		}
		defer f.Close()

		input = f
	}

	var src cache.AccessSource = trace.NewScanner(input)

	recorder, err := setupRecording(config)
	if err != nil {
		return err
	}
	if recorder != nil && recordAccesses {
		src = recorder.tee(src)
	}

	sim.Run(src)

	if recorder != nil {
		recorder.finish(sim.Stats())
	}

	return cache.WriteReport(cmd.OutOrStdout(), sim.Stats())
}

// setupRecording creates the run recorder when recording is requested,
// either through flags or through the CSIM_RECORD environment variable.
// It returns nil when recording is off.
func setupRecording(config cache.Config) (*runRecorder, error) {
	path := recordPath
	if path == "" {
		path = os.Getenv("CSIM_RECORD")
	}

	if path == "" && !recordAccesses {
		return nil, nil
	}

	backend, err := datarecording.New(path)
	if err != nil {
		return nil, err
	}

	return newRunRecorder(backend, config), nil
}

func parseConfig(args []string) (cache.Config, error) {
	var config cache.Config
	var err error

	config.NumSets, err = strconv.Atoi(args[0])
	if err != nil {
		return cache.Config{},
			fmt.Errorf("number of sets must be an integer, got %q", args[0])
	}

	config.WaysPerSet, err = strconv.Atoi(args[1])
	if err != nil {
		return cache.Config{},
			fmt.Errorf("ways per set must be an integer, got %q", args[1])
	}

	config.BlockSize, err = strconv.Atoi(args[2])
	if err != nil {
		return cache.Config{},
			fmt.Errorf("block size must be an integer, got %q", args[2])
	}

	config.WriteMiss, err = cache.ParseWriteMissPolicy(args[3])
	if err != nil {
		return cache.Config{}, err
	}

	config.WriteHit, err = cache.ParseWriteHitPolicy(args[4])
	if err != nil {
		return cache.Config{}, err
	}

	config.Eviction, err = cache.ParseEvictionPolicy(args[5])
	if err != nil {
		return cache.Config{}, err
	}

	return config, nil
}
