package types

// TaskContext holds per-run execution state passed through every
// evaluator method. Currently it tracks the optional tick budget that
// guards against runaway loops.
type TaskContext struct {
	// TicksRemaining counts down once per evaluated node.
	// A negative value means the run is unlimited.
	TicksRemaining int64
}

// NewTaskContext creates a context with no tick limit
func NewTaskContext() *TaskContext {
	return &TaskContext{TicksRemaining: -1}
}

// NewTaskContextWithTicks creates a context that allows at most ticks
// node evaluations. ticks <= 0 means unlimited.
func NewTaskContextWithTicks(ticks int64) *TaskContext {
	if ticks <= 0 {
		return NewTaskContext()
	}
	return &TaskContext{TicksRemaining: ticks}
}

// ConsumeTick decrements the tick count and returns true if ticks remain
func (ctx *TaskContext) ConsumeTick() bool {
	if ctx.TicksRemaining < 0 {
		return true
	}
	if ctx.TicksRemaining == 0 {
		return false
	}
	ctx.TicksRemaining--
	return true
}
