package reducer

import (
	"sync/atomic"

	"github.com/vic/lamcalc/pkg/lambda"
)

// TraceEvent records one fired redex.
type TraceEvent struct {
	Step   uint64
	Param  string // the binder that was substituted
	Redex  string // the redex, pretty-printed
	Result string // the substitution result, pretty-printed
}

// EnableTrace starts recording reduction steps into a fixed-capacity
// buffer. Events past the capacity are dropped, not wrapped.
func (e *Engine) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	e.traceBuf = make([]TraceEvent, capacity)
	e.traceCap = uint64(capacity)
	atomic.StoreUint64(&e.traceIdx, 0)
	atomic.StoreUint32(&e.traceOn, 1)
}

func (e *Engine) DisableTrace() {
	atomic.StoreUint32(&e.traceOn, 0)
}

// TraceSnapshot returns a copy of the events recorded so far.
func (e *Engine) TraceSnapshot() []TraceEvent {
	if atomic.LoadUint32(&e.traceOn) == 0 {
		return nil
	}
	count := atomic.LoadUint64(&e.traceIdx)
	if count > e.traceCap {
		count = e.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, e.traceBuf[:count])
	return res
}

func (e *Engine) recordTrace(param string, redex, result lambda.Term) {
	if atomic.LoadUint32(&e.traceOn) == 0 || e.traceCap == 0 {
		return
	}
	idx := atomic.AddUint64(&e.traceIdx, 1) - 1
	if idx >= e.traceCap {
		return
	}
	e.traceBuf[idx] = TraceEvent{
		Step:   idx,
		Param:  param,
		Redex:  lambda.PrettyPrint(redex),
		Result: lambda.PrettyPrint(result),
	}
}
