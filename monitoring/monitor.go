// Package monitoring serves the progress and the counters of running caches
// over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim/id"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// A cacheSnapshot is the last published state of a cache.
type cacheSnapshot struct {
	Name      string
	Sets      int
	LineSize  uint64
	Ways      int
	Policy    string
	Stats     cache.Stats
	HitRate   float64
	Published string
}

// Monitor turns a simulation into a server that reports the state of the
// caches. Caches are never read from the server goroutines; the simulation
// publishes snapshots with PublishStats instead.
type Monitor struct {
	portNumber  int
	openBrowser bool
	idGen       id.IDGenerator
	url         string

	snapshotsLock sync.Mutex
	cacheNames    []string
	snapshots     map[string]*cacheSnapshot

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// minPortNumber is the lowest port the monitor accepts.
const minPortNumber = 1000

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		idGen:     id.NewIDGenerator(),
		snapshots: make(map[string]*cacheSnapshot),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < minPortNumber {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes the monitor open its page in the default browser once
// the server starts.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterCache registers a cache to be monitored.
func (m *Monitor) RegisterCache(c *cache.Cache) {
	m.snapshotsLock.Lock()
	defer m.snapshotsLock.Unlock()

	name := c.Name()
	if _, found := m.snapshots[name]; found {
		panic("cache " + name + " already registered")
	}

	g := c.Geometry()
	m.cacheNames = append(m.cacheNames, name)
	m.snapshots[name] = &cacheSnapshot{
		Name:      name,
		Sets:      g.NumSets(),
		LineSize:  g.LineSize(),
		Ways:      g.Ways,
		Policy:    g.Policy.String(),
		Stats:     c.Stats(),
		Published: time.Now().Format(time.RFC3339),
	}
}

// PublishStats replaces the counters reported for a cache.
func (m *Monitor) PublishStats(name string, stats cache.Stats) {
	m.snapshotsLock.Lock()
	defer m.snapshotsLock.Unlock()

	snapshot, found := m.snapshots[name]
	if !found {
		panic("cache " + name + " is not registered")
	}

	snapshot.Stats = stats
	snapshot.HitRate = stats.HitRate()
	snapshot.Published = time.Now().Format(time.RFC3339)
}

func (m *Monitor) snapshot(name string) (cacheSnapshot, bool) {
	m.snapshotsLock.Lock()
	defer m.snapshotsLock.Unlock()

	snapshot, found := m.snapshots[name]
	if !found {
		return cacheSnapshot{}, false
	}

	return *snapshot, true
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.idGen.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router that serves the monitoring API.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/list_caches", m.listCaches)
	r.HandleFunc("/api/stats/{name}", m.cacheStats)
	r.HandleFunc("/api/cache/{name}", m.cacheDetails)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	listener, err := net.Listen("tcp", m.listenAddress())
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	handler := m.Handler()

	go func() {
		err := http.Serve(listener, handler)
		dieOnErr(err)
	}()

	if m.openBrowser {
		err := browser.OpenURL(m.url + "/api/list_caches")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
		}
	}
}

// listenAddress returns the address to listen on, a random port unless an
// allowed port is configured.
func (m *Monitor) listenAddress() string {
	if m.portNumber < minPortNumber {
		return ":0"
	}

	return ":" + strconv.Itoa(m.portNumber)
}

// URL returns the address of the server, empty before StartServer.
func (m *Monitor) URL() string {
	return m.url
}

func (m *Monitor) listCaches(w http.ResponseWriter, _ *http.Request) {
	m.snapshotsLock.Lock()
	names := make([]string, len(m.cacheNames))
	copy(names, m.cacheNames)
	m.snapshotsLock.Unlock()

	writeJSON(w, names)
}

func (m *Monitor) cacheStats(w http.ResponseWriter, r *http.Request) {
	snapshot, found := m.snapshotOr404(w, r)
	if !found {
		return
	}

	writeJSON(w, snapshot.Stats)
}

func (m *Monitor) cacheDetails(w http.ResponseWriter, r *http.Request) {
	snapshot, found := m.snapshotOr404(w, r)
	if !found {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&snapshot)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) snapshotOr404(
	w http.ResponseWriter,
	r *http.Request,
) (cacheSnapshot, bool) {
	name := mux.Vars(r)["name"]

	snapshot, found := m.snapshot(name)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Cache not found"))
		dieOnErr(err)
	}

	return snapshot, found
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
