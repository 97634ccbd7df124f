// Package logging wires the routing engine's optional Instrumentation
// hook to the standard log package, matching how the rest of the
// repository logs (startup, request logging via chi's middleware.Logger).
package logging

import (
	"log"
	"time"

	"github.com/antigravity/morocco-transport/internal/routing"
)

// VerboseInstrumentation logs every iteration and round to the
// standard logger. Intended for the CLI's --verbose flag and local
// debugging, never for the HTTP server's hot path.
type VerboseInstrumentation struct {
	iterationStart time.Time
	roundStart     time.Time
}

func NewVerboseInstrumentation() *VerboseInstrumentation {
	return &VerboseInstrumentation{}
}

func (v *VerboseInstrumentation) IterationStarted(minute int) {
	v.iterationStart = time.Now()
	log.Printf("iteration start: departure minute %s", routing.SecondsToClock(minute))
}

func (v *VerboseInstrumentation) IterationFinished(minute int) {
	log.Printf("iteration done: departure minute %s (%s)", routing.SecondsToClock(minute), time.Since(v.iterationStart))
}

func (v *VerboseInstrumentation) RoundStarted(round int) {
	v.roundStart = time.Now()
	log.Printf("  round %d start", round)
}

func (v *VerboseInstrumentation) RoundFinished(round int, touched int) {
	log.Printf("  round %d done: %d stops touched (%s)", round, touched, time.Since(v.roundStart))
}
