package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/simulation"
	"github.com/sarchlab/cachesim/workload"
	"github.com/spf13/cobra"
)

type options struct {
	sets     uint32
	lineSize uint32
	ways     uint32
	policy   string

	pattern   string
	tile      uint64
	traceFile string

	record         bool
	recordAccesses bool
	output         string

	monitor     bool
	monitorPort int
	openBrowser bool

	verbose bool
}

func readOptions(cmd *cobra.Command) (options, error) {
	var (
		opts options
		errs []error
	)

	flags := cmd.Flags()

	get := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error

	opts.sets, err = flags.GetUint32("sets")
	get(err)
	opts.lineSize, err = flags.GetUint32("line-size")
	get(err)
	opts.ways, err = flags.GetUint32("ways")
	get(err)
	opts.policy, err = flags.GetString("policy")
	get(err)
	opts.pattern, err = flags.GetString("pattern")
	get(err)
	opts.tile, err = flags.GetUint64("tile")
	get(err)
	opts.traceFile, err = flags.GetString("trace-file")
	get(err)
	opts.record, err = flags.GetBool("record")
	get(err)
	opts.recordAccesses, err = flags.GetBool("record-accesses")
	get(err)
	opts.output, err = flags.GetString("output")
	get(err)
	opts.monitor, err = flags.GetBool("monitor")
	get(err)
	opts.monitorPort, err = flags.GetInt("monitor-port")
	get(err)
	opts.openBrowser, err = flags.GetBool("open-browser")
	get(err)
	opts.verbose, err = flags.GetBool("verbose")
	get(err)

	if len(errs) > 0 {
		return opts, errors.Join(errs...)
	}

	return opts, opts.validate()
}

func (o options) validate() error {
	if o.recordAccesses && !o.record {
		return errors.New("--record-accesses requires --record")
	}

	if !o.monitor && (o.monitorPort != 0 || o.openBrowser) {
		return errors.New("--monitor-port and --open-browser " +
			"require --monitor")
	}

	return nil
}

func (o options) buildCache(name, policy string) (*cache.Cache, error) {
	b := cache.MakeBuilder().
		WithNumSets(o.sets).
		WithLineSize(o.lineSize).
		WithWayAssociativity(o.ways).
		WithReplacementPolicy(policy).
		WithLogger(log.Default())

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b.Build(name), nil
}

func (o options) buildWorkload() (workload.Workload, error) {
	switch o.pattern {
	case "transpose":
		return workload.NewTranspose(), nil
	case "tiled":
		return workload.NewTiledTranspose(o.tile), nil
	case "trace":
		if o.traceFile == "" {
			return nil, errors.New("--trace-file is required by " +
				"the trace pattern")
		}

		t, err := workload.LoadTraceFile(o.traceFile)
		if err != nil {
			return nil, err
		}

		return t, nil
	default:
		return nil, fmt.Errorf("unknown pattern %q", o.pattern)
	}
}

func (o options) buildSimulation() *simulation.Simulation {
	b := simulation.MakeBuilder()

	if o.record {
		b = b.WithOutputFileName(o.output)
		if o.recordAccesses {
			b = b.WithAccessTracing()
		}
	} else {
		b = b.WithoutRecording()
	}

	if o.monitor {
		b = b.WithMonitor().WithMonitorPort(o.monitorPort)
		if o.openBrowser {
			b = b.WithBrowser()
		}
	}

	return b.Build()
}
