package fstr

// Binding reports how a type participates in formatting.
type Binding uint8

const (
	// BindNone: the type is not formattable.
	BindNone Binding = iota
	// BindValue: the type implements [Formatter] with value receivers and
	// may be passed directly.
	BindValue
	// BindPointer: only the pointer type implements [Formatter]; the bare
	// value is not formattable. This is how a formatter that mutates its
	// receiver declares itself.
	BindPointer
	// BindBuiltin: one of the built-in kinds (bool, integers, floats,
	// string, []byte, pointers).
	BindBuiltin
)

func (b Binding) String() string {
	switch b {
	case BindValue:
		return "value"
	case BindPointer:
		return "pointer"
	case BindBuiltin:
		return "builtin"
	}
	return "none"
}

// BindingOf reports how T binds to the formatting machinery. An explicit
// [Formatter] implementation wins over everything; then the exact built-in
// types are checked; everything else is unformattable. Defined types with a
// built-in underlying type deliberately do not bind: a mere conversion to
// string or int is not an opt-in (see [Formatter]).
func BindingOf[T any]() Binding {
	var zero T
	if _, ok := any(zero).(Formatter); ok {
		return BindValue
	}
	if _, ok := any(&zero).(Formatter); ok {
		return BindPointer
	}
	if builtinKind(any(zero)) != KindNone {
		return BindBuiltin
	}
	return BindNone
}

// IsFormattable reports whether values of type T may be passed as
// formatting arguments. A BindPointer type is formattable only through its
// pointer: IsFormattable[T] is false while IsFormattable[*T] is true.
func IsFormattable[T any]() bool {
	var zero T
	if _, ok := any(zero).(Formatter); ok {
		return true
	}
	return builtinKind(any(zero)) != KindNone
}

// builtinKind returns the Kind a value would erase to through the built-in
// table alone, KindNone if it would not.
func builtinKind(v any) Kind {
	switch v.(type) {
	case bool:
		return KindBool
	case int, int8, int16, int32:
		return KindInt
	case int64:
		return KindInt64
	case uint, uint8, uint16, uint32:
		return KindUint
	case uint64:
		return KindUint64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case Char:
		return KindRune
	case string:
		return KindString
	case []byte:
		return KindBytes
	case uintptr:
		return KindPointer
	}
	return KindNone
}
