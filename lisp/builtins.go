package lisp

// DefaultBuiltins returns the primitives every global environment starts
// with.  A new slice of new Primitives is returned on each call.
func DefaultBuiltins() []*Primitive {
	return []*Primitive{
		NewPrimitive("inc", intOp("inc", 1)),
		NewPrimitive("dec", intOp("dec", -1)),
	}
}

// intOp returns a PrimitiveFunc that adds delta to its integer argument.
func intOp(name string, delta int) PrimitiveFunc {
	return func(arg Atom) (Atom, error) {
		x, ok := arg.(Int)
		if !ok {
			return nil, &TypeError{Op: name, Want: AInt, Value: arg}
		}
		return x + Int(delta), nil
	}
}
