package problem

import (
	"fmt"
	"runtime"
)

const maxStackDepth = 32

// StackTrace is a captured call stack, innermost frame first.
type StackTrace []string

// StackTracer is implemented by errors that carry the stack they were raised on.
type StackTracer interface {
	StackTrace() StackTrace
}

// Callers captures the stack of its caller. skip is the number of
// additional frames to drop above the caller.
func Callers(skip int) StackTrace {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	st := make(StackTrace, 0, n)
	for {
		f, more := frames.Next()
		st = append(st, fmt.Sprintf("%s(%s:%d)", f.Function, f.File, f.Line))
		if !more {
			break
		}
	}
	return st
}
