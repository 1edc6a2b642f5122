// Package fstr is a type-safe, allocation-conscious formatting core: it
// renders a heterogeneous argument list into a byte sink, guided by a small
// mini-language embedded in a format string.
//
// The central entry points are [Format], [AppendFormat], [FormatTo], and
// [FormatBuffer], which accept a format string and variadic arguments:
//
//	s, err := fstr.Format("{} = {:#06x}", "answer", 42)
//	// "answer = 0x002a"
//
// # Format strings
//
// A format string mixes literal text with replacement fields. {{ and }}
// escape literal braces. A field names its argument by position ({0}), by
// name ({x}, see [Named]), or automatically ({} consumes the next unused
// index); automatic and explicit positional indexing cannot be mixed in
// one string. After ':' comes the spec:
//
//	[[fill]align][sign]['#']['0'][width]['.'precision]['L'][type]
//
// align is '<', '>', or '^'; sign is '+', '-', or ' '; '#' selects the
// alternate form (base prefixes); '0' pads numbers with zeros after the
// sign; width and precision are digits or a nested {argument} reference
// resolved when the field is formatted; type is one of b c d o x X e E f F
// g G s p ?. See [Spec] for the parsed form.
//
// # Sinks
//
// Output goes through a [Buffer]: an append-only sink over externally
// owned storage with a caller-registered [GrowFunc]. [ByteBuffer] grows on
// the heap; [FixedBuffer] never grows and records truncation instead:
// formatting into fixed storage drops what does not fit rather than
// failing. A grow callback may grant less capacity than requested; the
// pending write is then truncated to what was granted.
//
// # Extending to new types
//
// A type opts in by implementing [Formatter]. Only exact built-in types
// and Formatter implementations are formattable: a defined type whose
// underlying type is string does not format as a string, because silent
// conversions would make formattability depend on the call site. Use
// [IsFormattable] and [BindingOf] to query a type ahead of time.
//
// # Scanning without formatting
//
// [Scan] drives a caller-supplied [Handler] over a format string, and
// [Validate] uses the same machinery to check syntax with no arguments and
// no output. [Fields] iterates the replacement fields directly.
package fstr
