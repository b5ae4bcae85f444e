package simulation

import (
	"github.com/rs/xid"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/monitoring"
	"github.com/sarchlab/cachesim/sim/id"
)

// Builder can be used to build a simulation.
type Builder struct {
	recordOn        bool
	accessTracingOn bool
	monitorOn       bool
	monitorPort     int
	openBrowser     bool
	outputFileName  string
	publishInterval uint64
}

// MakeBuilder creates a new builder. By default results are recorded and no
// monitor is started.
func MakeBuilder() Builder {
	return Builder{
		recordOn:        true,
		publishInterval: 1 << 16,
	}
}

// WithoutRecording sets the simulation to not create a database.
func (b Builder) WithoutRecording() Builder {
	b.recordOn = false
	return b
}

// WithAccessTracing records every access and eviction into the database.
func (b Builder) WithAccessTracing() Builder {
	b.accessTracingOn = true
	return b
}

// WithMonitor starts a monitoring server.
func (b Builder) WithMonitor() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring page in the default browser.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithPublishInterval sets how many accesses pass between two updates of the
// counters shown by the monitor.
func (b Builder) WithPublishInterval(accesses uint64) Builder {
	b.publishInterval = accesses
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}

	if !b.recordOn && b.accessTracingOn {
		panic("access tracing requires recording")
	}

	if b.publishInterval == 0 {
		panic("publish interval must be positive")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:              xid.New().String(),
		publishInterval: b.publishInterval,
		cacheNameIndex:  make(map[string]int),
	}

	if b.recordOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "cachesim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)

		if b.accessTracingOn {
			s.accessTracer = trace.NewDBTracer(s.dataRecorder,
				id.NewParallelIDGenerator())
		}
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}

		if b.openBrowser {
			s.monitor.WithBrowser()
		}

		s.monitor.StartServer()
	}

	return s
}
