package log

import (
	"runtime"

	"github.com/rs/zerolog"
)

// stackHook attaches the capturing call stack to error-level events so
// failed resolution runs can be traced without re-running with debug noise.
type stackHook struct{}

func (h *stackHook) Run(e *zerolog.Event, level zerolog.Level, message string) {
	if level < zerolog.ErrorLevel {
		return
	}

	arr := zerolog.Arr()
	for _, f := range callFrames(5) {
		arr.Dict(zerolog.Dict().
			Int("line", f.line).
			Str("file", f.file).
			Str("function", f.function),
		)
	}
	e.Array("stack", arr)
}

// callFrame is one resolved program counter. Fields may be zero-valued when
// the runtime cannot attribute the counter.
type callFrame struct {
	line     int
	file     string
	function string
}

func callFrames(skip int) []callFrame {
	var pcs [64]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]callFrame, 0, n)
	for {
		frame, more := frames.Next()
		out = append(out, callFrame{
			line:     frame.Line,
			file:     frame.File,
			function: frame.Function,
		})
		if !more {
			break
		}
	}

	return out
}
