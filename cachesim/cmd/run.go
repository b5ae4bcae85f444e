package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/simulation"
	"github.com/sarchlab/cachesim/workload"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a workload on one cache and print its counters.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := readOptions(cmd)
			if err != nil {
				return err
			}

			return run(cmd.OutOrStdout(), opts)
		},
	}
}

func run(out io.Writer, opts options) error {
	c, err := opts.buildCache("Cache", opts.policy)
	if err != nil {
		return err
	}
	defer c.Close()

	w, err := opts.buildWorkload()
	if err != nil {
		return err
	}

	sim := opts.buildSimulation()
	defer sim.Terminate()

	stats, err := runOnCache(out, sim, c, w, opts.verbose)
	if err != nil {
		return err
	}

	fmt.Fprint(out, stats)

	return nil
}

func runOnCache(
	out io.Writer,
	sim *simulation.Simulation,
	c *cache.Cache,
	w workload.Workload,
	verbose bool,
) (cache.Stats, error) {
	sim.RegisterCache(c)

	if verbose {
		c.AcceptHook(trace.NewTracer(log.New(out, "", 0)))
	}

	return sim.Run(c, w)
}
