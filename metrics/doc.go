// Package metrics records parser activity.
//
// The parser reports through the [Recorder] interface. [NoOp] discards
// everything; [NewPrometheus] registers collectors on a caller-supplied
// registry, which [WriteText] renders in the Prometheus text format.
package metrics
