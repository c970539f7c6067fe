package lisp

import (
	"errors"
	"fmt"
	"io"
)

// CallStack records the closure applications in progress.
type CallStack struct {
	Frames []CallFrame

	// MaxHeight limits the number of frames when positive.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Closure *Closure
	Arg     Atom
}

func (f *CallFrame) String() string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%v applied to %v", f.Closure.Lambda, f.Arg)
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame for the application of c to arg.  Push
// returns a *StackOverflowError and leaves s unchanged if the frame would
// exceed s.MaxHeight.
func (s *CallStack) Push(c *Closure, arg Atom) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return &StackOverflowError{Height: s.MaxHeight}
	}
	s.Frames = append(s.Frames, CallFrame{Closure: c, Arg: arg})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		_n, err := fmt.Fprintf(w, "%sheight %d: %v\n", indent, i, &s.Frames[i])
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// StackOverflowError reports an application that would exceed the maximum
// stack height.
type StackOverflowError struct {
	Height int
}

func (err *StackOverflowError) Condition() string { return CondStackOverflow }

func (err *StackOverflowError) Error() string {
	return fmt.Sprintf("stack overflow: maximum height %d exceeded", err.Height)
}

// StackError attaches the call stack at the point of failure to a runtime
// error.  Its message is that of Err.
type StackError struct {
	Err   error
	Stack *CallStack
}

func (err *StackError) Error() string { return err.Err.Error() }

func (err *StackError) Unwrap() error { return err.Err }

// StackTrace returns the call stack attached to err, if any.
func StackTrace(err error) (*CallStack, bool) {
	var serr *StackError
	if errors.As(err, &serr) {
		return serr.Stack, true
	}
	return nil, false
}
