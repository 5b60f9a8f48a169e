// Package profiling runs CPU, heap and execution-trace profiles around a
// single CLI invocation.
package profiling

import (
	stderrors "errors"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
)

// Options names the output file of each profile. Empty paths are skipped.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Enabled reports whether any profile is requested.
func (o Options) Enabled() bool {
	return o.CPU != "" || o.Mem != "" || o.Trace != ""
}

// Session holds the profiles started by Start until Stop is called.
type Session struct {
	opts      Options
	cpuFile   *os.File
	traceFile *os.File
}

// Start begins CPU profiling and tracing as requested by opts. On error any
// profile already started is stopped.
func Start(opts Options) (*Session, error) {
	s := &Session{opts: opts}

	if opts.CPU != "" {
		f, err := create(opts.CPU, "CPU profile")
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, snipErrors.InternalError("failed to start CPU profile", err)
		}
		s.cpuFile = f
	}

	if opts.Trace != "" {
		f, err := create(opts.Trace, "trace")
		if err != nil {
			s.stopCPU()
			return nil, err
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, snipErrors.InternalError("failed to start trace", err)
		}
		s.traceFile = f
	}

	return s, nil
}

// Stop ends running profiles and writes the heap profile if requested.
// Calling Stop more than once is safe.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.stopCPU()
	if s.traceFile != nil {
		trace.Stop()
		_ = s.traceFile.Close()
		s.traceFile = nil
	}

	if s.opts.Mem == "" {
		return nil
	}
	path := s.opts.Mem
	s.opts.Mem = ""
	return WriteHeap(path)
}

func (s *Session) stopCPU() {
	if s.cpuFile == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = s.cpuFile.Close()
	s.cpuFile = nil
}

// WriteHeap writes a heap profile to path after forcing a GC.
func WriteHeap(path string) error {
	f, err := create(path, "heap profile")
	if err != nil {
		return err
	}

	runtime.GC()
	werr := pprof.WriteHeapProfile(f)
	cerr := f.Close()
	if err := stderrors.Join(werr, cerr); err != nil {
		return snipErrors.IOError("failed to write heap profile", err).
			WithDetail("path", path)
	}
	return nil
}

func create(path, what string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, snipErrors.IOError("failed to create "+what+" file", err).
			WithDetail("path", path)
	}
	return f, nil
}
