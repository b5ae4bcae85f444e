package cmd

import (
	"fmt"
	"io"

	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim/naming"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Run a workload on an LRU and a PLRU cache of the same shape.",
		Long: "`compare` ignores --policy and reports the counters of both " +
			"replacement policies side by side.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := readOptions(cmd)
			if err != nil {
				return err
			}

			return compare(cmd.OutOrStdout(), opts)
		},
	}
}

func compare(out io.Writer, opts options) error {
	w, err := opts.buildWorkload()
	if err != nil {
		return err
	}

	policies := []cache.PolicyKind{cache.PolicyLRU, cache.PolicyPLRU}
	caches := make([]*cache.Cache, 0, len(policies))

	for i, p := range policies {
		name := naming.BuildNameWithIndex("Compare", "Cache", i)

		c, err := opts.buildCache(name, p.String())
		if err != nil {
			return err
		}
		defer c.Close()

		caches = append(caches, c)
	}

	sim := opts.buildSimulation()
	defer sim.Terminate()

	for _, c := range caches {
		stats, err := runOnCache(out, sim, c, w, opts.verbose)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s:\n%s", c.Geometry().Policy, stats)
	}

	return nil
}
