// Package cmd provides the command-line interface for cachesim.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// envFlags maps environment variables to the flags they provide defaults for.
var envFlags = map[string]string{
	"CACHESIM_SETS":      "sets",
	"CACHESIM_LINE_SIZE": "line-size",
	"CACHESIM_WAYS":      "ways",
	"CACHESIM_POLICY":    "policy",
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "cachesim",
		Short: "cachesim counts hits, misses, and evictions of a " +
			"set-associative cache.",
		Long: `cachesim drives a matrix transpose or a recorded trace ` +
			`through a set-associative cache with LRU or PLRU replacement ` +
			`and reports the cache counters. Geometry defaults can be set ` +
			`with CACHESIM_* variables, also read from a .env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: applyEnvDefaults,
	}

	flags := rootCmd.PersistentFlags()
	flags.Uint32("sets", 1024, "Number of sets, a power of two")
	flags.Uint32("line-size", 8, "Line size in bytes, a power of two")
	flags.Uint32("ways", 8, "Associativity, a power of two up to 64")
	flags.String("policy", "LRU", "Replacement policy, LRU or PLRU")
	flags.String("pattern", "tiled",
		"Address stream: transpose, tiled, or trace")
	flags.Uint64("tile", 8, "Tile size of the tiled transpose")
	flags.String("trace-file", "", "Trace replayed by the trace pattern")
	flags.Bool("record", false, "Record the counters into a SQLite database")
	flags.Bool("record-accesses", false,
		"Record every access and eviction, requires --record")
	flags.String("output", "", "Database file name without extension")
	flags.Bool("monitor", false, "Serve live counters over HTTP")
	flags.Int("monitor-port", 0, "Port of the monitor, random if unset")
	flags.Bool("open-browser", false, "Open the monitor in a browser")
	flags.Bool("verbose", false, "Print every access and eviction")

	rootCmd.AddCommand(newRunCmd(), newCompareCmd())

	return rootCmd
}

// applyEnvDefaults sets the flags that are not given on the command line from
// the environment.
func applyEnvDefaults(cmd *cobra.Command, _ []string) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	for env, flag := range envFlags {
		value, ok := os.LookupEnv(env)
		if !ok || cmd.Flags().Changed(flag) {
			continue
		}

		if err := cmd.Flags().Set(flag, value); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}

	return nil
}

// Execute runs the root command and exits through atexit, so that buffered
// records are flushed on every path.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
