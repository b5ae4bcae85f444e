package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/mem/cache"
)

// An Access is one entry of a trace.
type Access struct {
	Kind    cache.AccessKind
	Address uint64
}

// A Trace replays recorded accesses.
type Trace struct {
	name     string
	accesses []Access
}

// NewTrace creates a trace from accesses.
func NewTrace(name string, accesses []Access) *Trace {
	return &Trace{
		name:     name,
		accesses: accesses,
	}
}

// LoadTraceFile reads a trace from a file. See ParseTrace for the format.
func LoadTraceFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseTrace(filepath.Base(path), f)
}

// ParseTrace reads one access per line. A line is a kind, L (load) or S
// (store), followed by an address in decimal or in hex with a 0x prefix. Blank
// lines and lines starting with # are skipped.
func ParseTrace(name string, r io.Reader) (*Trace, error) {
	t := NewTrace(name, nil)
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		access, err := parseAccess(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNumber, err)
		}

		t.accesses = append(t.accesses, access)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return t, nil
}

func parseAccess(line string) (Access, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Access{}, fmt.Errorf("expected <kind> <address>, got %q", line)
	}

	var access Access

	switch strings.ToUpper(fields[0]) {
	case "L", "LOAD":
		access.Kind = cache.AccessLoad
	case "S", "STORE":
		access.Kind = cache.AccessStore
	default:
		return Access{}, fmt.Errorf("unknown access kind %q", fields[0])
	}

	addr, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return Access{}, fmt.Errorf("invalid address %q: %w", fields[1], err)
	}

	access.Address = addr

	return access, nil
}

// Name returns the name of the trace.
func (t *Trace) Name() string {
	return t.name
}

// Len returns the number of accesses.
func (t *Trace) Len() uint64 {
	return uint64(len(t.accesses))
}

// Accesses returns the accesses of the trace.
func (t *Trace) Accesses() []Access {
	return t.accesses
}

// Run replays the trace.
func (t *Trace) Run(acc Accessor, progress Progress) error {
	const reportInterval = 4096

	for i, a := range t.accesses {
		if a.Kind == cache.AccessStore {
			acc.Store(a.Address)
		} else {
			acc.Load(a.Address)
		}

		if (i+1)%reportInterval == 0 {
			report(progress, reportInterval)
		}
	}

	report(progress, uint64(len(t.accesses)%reportInterval))

	return nil
}
