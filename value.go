package fstr

import (
	"math"
	"unsafe"
)

// Kind identifies the active payload of a [Value].
type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindInt64
	KindUint
	KindUint64
	KindFloat32
	KindFloat64
	KindRune
	KindString
	KindBytes
	KindPointer
	KindCustom
	KindNamed
)

var kindNames = []string{
	"none", "bool", "int", "int64", "uint", "uint64",
	"float32", "float64", "rune", "string", "bytes", "pointer",
	"custom", "named",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsIntegral reports whether k is one of the integer kinds. Runes count:
// they accept the integer presentations.
func (k Kind) IsIntegral() bool {
	switch k {
	case KindInt, KindInt64, KindUint, KindUint64, KindRune:
		return true
	}
	return false
}

// IsArithmetic reports whether k is an integer or floating-point kind.
func (k Kind) IsArithmetic() bool {
	return k.IsIntegral() || k == KindFloat32 || k == KindFloat64
}

// Char marks a rune argument as a character rather than an integer. Plain
// rune (int32) arguments canonicalize to the integer kind, matching how the
// language itself prints them; wrap with Char to format as a character by
// default.
type Char rune

// Formatter is the extensibility boundary: a type opts into formatting by
// implementing it. ParseSpec validates the portion of a replacement field
// after ':' (which may use a type-specific mini-language); Format renders
// the value through the cursor. args carries the full argument store so a
// formatter can resolve width or precision back-references of its own.
//
// A Formatter implemented on *T (pointer receiver) binds only pointers:
// passing a plain T leaves it unformattable. The asymmetry lets a formatter
// mutate its receiver, e.g. to fill a display cache.
type Formatter interface {
	ParseSpec(spec string) error
	Format(out Appender, spec string, args Args) error
}

// Handle is the erased form of a custom argument: the original value plus
// its Formatter binding. Visitation hands the Handle to the visitor
// un-invoked, so inspecting an argument stays decoupled from formatting it.
type Handle struct {
	value any
	f     Formatter
}

// Value returns the original argument.
func (h Handle) Value() any { return h.value }

// Parse validates a custom spec without producing output.
func (h Handle) Parse(spec string) error { return h.f.ParseSpec(spec) }

// Format renders the value through out.
func (h Handle) Format(out Appender, spec string, args Args) error {
	return h.f.Format(out, spec, args)
}

// Visitor receives exactly one call per visited [Value], selected by the
// active kind. Integers narrower than int are canonicalized to VisitInt and
// narrow unsigned integers to VisitUint, so a visitor never sees int8,
// int16, or int32 directly. VisitUnexpected is reserved for kinds a future
// version may add; a current Value never triggers it.
type Visitor interface {
	VisitNone()
	VisitBool(b bool)
	VisitInt(n int)
	VisitInt64(n int64)
	VisitUint(n uint)
	VisitUint64(n uint64)
	VisitFloat32(f float32)
	VisitFloat64(f float64)
	VisitRune(r rune)
	VisitString(s string)
	VisitBytes(p []byte)
	VisitPointer(p uintptr)
	VisitCustom(h Handle)
	VisitUnexpected(v Value)
}

// namedValue pairs an argument name with its value.
type namedValue struct {
	name  string
	value Value
}

// Value is the type-erased representation of one formatting argument:
// an immutable tagged union with exactly one active payload. Values never
// own memory; a Value must not outlive the argument it was built from.
type Value struct {
	kind Kind
	num  uint64 // bool, integers, float bits, rune, pointer
	str  string // string payload
	ref  any    // []byte, Handle, or *namedValue
}

// Kind returns the active payload tag. Named values report KindNamed; use
// [Value.Unwrap] to reach the inner value.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.num != 0 }

// Int returns the signed integer payload, valid for KindInt, KindInt64,
// and KindRune.
func (v Value) Int() int64 { return int64(v.num) }

// Uint returns the unsigned integer payload.
func (v Value) Uint() uint64 { return v.num }

// Float returns the floating-point payload widened to float64.
func (v Value) Float() float64 {
	if v.kind == KindFloat32 {
		return float64(math.Float32frombits(uint32(v.num)))
	}
	return math.Float64frombits(v.num)
}

// Str returns the string payload.
func (v Value) Str() string { return v.str }

// Bytes returns the byte-slice payload.
func (v Value) Bytes() []byte {
	p, _ := v.ref.([]byte)
	return p
}

// Pointer returns the pointer payload.
func (v Value) Pointer() uintptr { return uintptr(v.num) }

// Handle returns the custom-formatter payload.
func (v Value) Handle() Handle {
	h, _ := v.ref.(Handle)
	return h
}

// Name returns the argument name for KindNamed values and "" otherwise.
func (v Value) Name() string {
	if n, ok := v.ref.(*namedValue); ok {
		return n.name
	}
	return ""
}

// Unwrap returns the inner value of a named value, or v itself.
func (v Value) Unwrap() Value {
	if n, ok := v.ref.(*namedValue); ok {
		return n.value
	}
	return v
}

// Visit dispatches to exactly one visitor method based on the active kind.
// Named values dispatch on their inner value.
func (v Value) Visit(vis Visitor) {
	switch v.kind {
	case KindNone:
		vis.VisitNone()
	case KindBool:
		vis.VisitBool(v.num != 0)
	case KindInt:
		vis.VisitInt(int(int64(v.num)))
	case KindInt64:
		vis.VisitInt64(int64(v.num))
	case KindUint:
		vis.VisitUint(uint(v.num))
	case KindUint64:
		vis.VisitUint64(v.num)
	case KindFloat32:
		vis.VisitFloat32(math.Float32frombits(uint32(v.num)))
	case KindFloat64:
		vis.VisitFloat64(math.Float64frombits(v.num))
	case KindRune:
		vis.VisitRune(rune(int64(v.num)))
	case KindString:
		vis.VisitString(v.str)
	case KindBytes:
		vis.VisitBytes(v.Bytes())
	case KindPointer:
		vis.VisitPointer(uintptr(v.num))
	case KindCustom:
		vis.VisitCustom(v.Handle())
	case KindNamed:
		v.Unwrap().Visit(vis)
	default:
		vis.VisitUnexpected(v)
	}
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// valueOf erases one caller argument. An explicit Formatter implementation
// wins over everything; then exact built-in types are matched. Defined types
// whose underlying type happens to be a built-in do not convert: only
// explicit participation counts, so a type is never formattable in one
// package and not another depending on what conversions are visible.
//
// Unformattable arguments erase to KindNone with the original value
// retained for diagnostics; the failure surfaces when the argument is
// referenced, never before.
func valueOf(arg any) Value {
	if f, ok := arg.(Formatter); ok {
		return Value{kind: KindCustom, ref: Handle{value: arg, f: f}}
	}
	switch x := arg.(type) {
	case nil:
		return Value{kind: KindNone}
	case bool:
		return Value{kind: KindBool, num: boolBits(x)}
	case int:
		return Value{kind: KindInt, num: uint64(int64(x))}
	case int8:
		return Value{kind: KindInt, num: uint64(int64(x))}
	case int16:
		return Value{kind: KindInt, num: uint64(int64(x))}
	case int32:
		return Value{kind: KindInt, num: uint64(int64(x))}
	case int64:
		return Value{kind: KindInt64, num: uint64(x)}
	case uint:
		return Value{kind: KindUint, num: uint64(x)}
	case uint8:
		return Value{kind: KindUint, num: uint64(x)}
	case uint16:
		return Value{kind: KindUint, num: uint64(x)}
	case uint32:
		return Value{kind: KindUint, num: uint64(x)}
	case uint64:
		return Value{kind: KindUint64, num: x}
	case float32:
		return Value{kind: KindFloat32, num: uint64(math.Float32bits(x))}
	case float64:
		return Value{kind: KindFloat64, num: math.Float64bits(x)}
	case Char:
		return Value{kind: KindRune, num: uint64(int64(x))}
	case string:
		return Value{kind: KindString, str: x}
	case []byte:
		return Value{kind: KindBytes, ref: x}
	case uintptr:
		return Value{kind: KindPointer, num: uint64(x)}
	case unsafe.Pointer:
		return Value{kind: KindPointer, num: uint64(uintptr(x))}
	case NamedArg:
		inner := valueOf(x.Value)
		return Value{kind: KindNamed, ref: &namedValue{name: x.Name, value: inner}}
	}
	return Value{kind: KindNone, ref: arg}
}
