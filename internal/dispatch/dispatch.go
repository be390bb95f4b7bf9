// Package dispatch defines the minimal TaskDispatcher interface consumed
// by the orchestrator to hand a phase run off to background execution
// (spec §6, §9 Design Note: "a minimal TaskDispatcher interface with two
// implementations: in-process ... and external"). The core itself stays
// synchronous; dispatch only lives at the edge.
package dispatch

import "context"

// Task names recognized by dispatcher implementations.
const (
	TaskRunPhase = "matchcore.run_phase"
)

// Dispatcher enqueues a named task with opaque arguments and returns a
// task id. Delivery is at-least-once; phase output writes are idempotent
// by (run_id, phase), so duplicate delivery is harmless (spec §6).
type Dispatcher interface {
	Enqueue(ctx context.Context, taskName string, args map[string]string) (string, error)
}
