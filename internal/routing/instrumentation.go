package routing

// Instrumentation is a thin, optional hook for timing/telemetry
// threaded through the worker loop (Design Notes §9). NewWorker
// replaces a nil Instrumentation with NoopInstrumentation, whose empty
// methods leave only an interface call per iteration and per round.
type Instrumentation interface {
	IterationStarted(minute int)
	IterationFinished(minute int)
	RoundStarted(round int)
	RoundFinished(round int, touched int)
}

type NoopInstrumentation struct{}

func (NoopInstrumentation) IterationStarted(minute int)          {}
func (NoopInstrumentation) IterationFinished(minute int)         {}
func (NoopInstrumentation) RoundStarted(round int)               {}
func (NoopInstrumentation) RoundFinished(round, touched int)     {}
