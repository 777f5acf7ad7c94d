// Package profile starts optional runtime profiling for the kumihan command.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof -o kumihan .
//	./kumihan --pprof-mode=cpu parse large.txt
//
// Without the tag, [Profiler.Start] returns a no-op and [Modes] is empty.
//
// Profiles are written to [Profiler.Dir] with names matching the mode
// (cpu.pprof, mem.pprof, ...). Analyze them with
//
//	go tool pprof -http=: kumihan cpu.pprof
//
// The tagged build also imports [net/http/pprof], so an application that
// serves HTTP exposes the live profiles under /debug/pprof/.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
