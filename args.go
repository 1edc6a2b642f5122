package fstr

// NamedArg attaches a name to an argument so a format string can reference
// it as {name}. Build one with [Named].
type NamedArg struct {
	Name  string
	Value any
}

// Named returns a named argument.
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// Args is an immutable, indexed view of one formatting call's arguments.
// It holds erased [Value]s that reference the caller's originals, so an
// Args must not outlive the call that built it. The argument count and
// order are fixed at construction.
type Args struct {
	values []Value
}

// MakeArgs erases args into a store. Positional lookup is O(1); named
// lookup is a linear scan, which is the right trade for the handful of
// names a format string carries. Unformattable arguments are stored as
// none-values and fail only if a field references them.
func MakeArgs(args ...any) Args {
	values := make([]Value, len(args))
	for i, a := range args {
		values[i] = valueOf(a)
	}
	return Args{values: values}
}

// Len returns the number of arguments.
func (a Args) Len() int { return len(a.values) }

// Get returns the value at index i. Out-of-range indexes return a
// none-value and ok=false rather than panicking, because the index comes
// from user-supplied format text.
func (a Args) Get(i int) (Value, bool) {
	if i < 0 || i >= len(a.values) {
		return Value{}, false
	}
	return a.values[i], true
}

// GetNamed returns the value whose name is name.
func (a Args) GetNamed(name string) (Value, bool) {
	for _, v := range a.values {
		if v.kind == KindNamed && v.Name() == name {
			return v.Unwrap(), true
		}
	}
	return Value{}, false
}
