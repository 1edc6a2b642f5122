package fstr

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderValue formats one resolved argument into out according to sp.
// Width and precision references are read from args here, at use time.
// Digit conversion is delegated to strconv; this file owns presentation
// selection, sign and prefix assembly, and padding.
func renderValue(out Appender, v Value, sp Spec, args Args) error {
	v = v.Unwrap()
	if v.Kind() == KindNone {
		if v.ref != nil {
			return resolveErr(ArgRef{}, ErrNotFormattable, "argument of type %T", v.ref)
		}
		return resolveErr(ArgRef{}, ErrNotFormattable, "no value")
	}
	if err := checkPresentation(sp.Type, v.Kind()); err != nil {
		return err
	}
	if err := checkFlags(sp, v.Kind()); err != nil {
		return err
	}
	width, prec, err := sp.resolve(args)
	if err != nil {
		return err
	}

	switch v.Kind() {
	case KindBool:
		if sp.Type == PresNone || sp.Type == PresString {
			return writeAligned(out, "", strconv.FormatBool(v.Bool()), width, sp, false)
		}
		return renderInt(out, uint64(v.num), false, sp, width)
	case KindInt, KindInt64:
		n := v.Int()
		neg := n < 0
		return renderInt(out, uint64(absInt64(n)), neg, sp, width)
	case KindUint, KindUint64:
		return renderInt(out, v.Uint(), false, sp, width)
	case KindRune:
		return renderRune(out, rune(v.Int()), sp, width)
	case KindFloat32, KindFloat64:
		bits := 64
		if v.Kind() == KindFloat32 {
			bits = 32
		}
		return renderFloat(out, v.Float(), bits, sp, width, prec)
	case KindString:
		return renderString(out, v.Str(), sp, width, prec)
	case KindBytes:
		return renderString(out, string(v.Bytes()), sp, width, prec)
	case KindPointer:
		return renderPointer(out, v.Pointer(), sp, width)
	case KindCustom:
		// Custom values are normally intercepted before spec parsing; this
		// path serves visitors that re-enter with a parsed spec.
		return v.Handle().Format(out, "", args)
	}
	return resolveErr(ArgRef{}, ErrNotFormattable, "argument of kind %s", v.Kind())
}

// checkFlags rejects flag/kind combinations the grammar cannot rule out:
// signs on strings, zero padding on booleans, precision on integers.
func checkFlags(sp Spec, k Kind) error {
	numericPres := sp.Type != PresNone && sp.Type != PresString && sp.Type != PresChar && sp.Type != PresDebug
	arithmetic := k.IsArithmetic() || (k == KindBool && numericPres)
	if sp.Sign != SignNone && !arithmetic {
		return resolveErr(ArgRef{}, ErrTypeMismatch, "sign requires a numeric argument, got %s", k)
	}
	if sp.Alt && !arithmetic {
		return resolveErr(ArgRef{}, ErrTypeMismatch, "'#' requires a numeric argument, got %s", k)
	}
	if sp.Zero && !arithmetic && k != KindPointer {
		return resolveErr(ArgRef{}, ErrTypeMismatch, "zero padding requires a numeric argument, got %s", k)
	}
	hasPrec := sp.Precision >= 0 || sp.PrecRef.Kind != RefNone
	if hasPrec {
		switch {
		case k == KindFloat32 || k == KindFloat64:
		case (k == KindString || k == KindBytes) && (sp.Type == PresNone || sp.Type == PresString || sp.Type == PresDebug):
		default:
			return resolveErr(ArgRef{}, ErrTypeMismatch, "precision not allowed for %s", k)
		}
	}
	return nil
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n // MinInt64 wraps to itself; uint64 conversion recovers the magnitude
	}
	return n
}

func signPrefix(neg bool, s Sign) string {
	switch {
	case neg:
		return "-"
	case s == SignPlus:
		return "+"
	case s == SignSpace:
		return " "
	}
	return ""
}

func renderInt(out Appender, mag uint64, neg bool, sp Spec, width int) error {
	base := 10
	altPrefix := ""
	upper := false
	switch sp.Type {
	case PresNone, PresDecimal:
	case PresBinary:
		base = 2
		altPrefix = "0b"
	case PresOctal:
		base = 8
		altPrefix = "0o"
	case PresUpperHex:
		upper = true
		fallthrough
	case PresHex:
		base = 16
		altPrefix = "0x"
		if upper {
			altPrefix = "0X"
		}
	case PresChar:
		if neg || mag > math.MaxInt32 {
			return resolveErr(ArgRef{}, ErrTypeMismatch, "value out of character range")
		}
		return renderRune(out, rune(mag), sp, width)
	}
	body := strconv.FormatUint(mag, base)
	if upper {
		body = strings.ToUpper(body)
	}
	prefix := signPrefix(neg, sp.Sign)
	if sp.Alt {
		prefix += altPrefix
	}
	return writeAligned(out, prefix, body, width, sp, true)
}

func renderRune(out Appender, r rune, sp Spec, width int) error {
	switch sp.Type {
	case PresNone, PresChar:
		return writeAligned(out, "", string(r), width, sp, false)
	case PresDebug:
		return writeAligned(out, "", strconv.QuoteRune(r), width, sp, false)
	}
	neg := r < 0
	return renderInt(out, uint64(absInt64(int64(r))), neg, sp, width)
}

func renderFloat(out Appender, f float64, bits int, sp Spec, width, prec int) error {
	upper := sp.Type == PresUpperSci || sp.Type == PresUpperFixed || sp.Type == PresUpperGen
	neg := math.Signbit(f)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		body := "inf"
		if math.IsNaN(f) {
			body = "nan"
			neg = false
		}
		if upper {
			body = strings.ToUpper(body)
		}
		prefix := signPrefix(neg, sp.Sign)
		// Zero padding never applies to non-finite values.
		plain := sp
		plain.Zero = false
		if plain.Align == AlignNumeric {
			plain.Align = AlignRight
			plain.Fill = ' '
		}
		return writeAligned(out, prefix, body, width, plain, true)
	}

	var verb byte
	switch sp.Type {
	case PresNone:
		verb = 'g'
		if prec < 0 {
			prec = -1 // shortest round-trip representation
		}
	case PresScientific, PresUpperSci:
		verb = 'e'
		if upper {
			verb = 'E'
		}
		if prec < 0 {
			prec = 6
		}
	case PresFixed, PresUpperFixed:
		verb = 'f'
		if prec < 0 {
			prec = 6
		}
	case PresGeneral, PresUpperGen:
		verb = 'g'
		if upper {
			verb = 'G'
		}
		if prec < 0 {
			prec = 6
		}
	}
	body := strconv.FormatFloat(math.Abs(f), verb, prec, bits)
	prefix := signPrefix(neg, sp.Sign)
	return writeAligned(out, prefix, body, width, sp, true)
}

func renderString(out Appender, s string, sp Spec, width, prec int) error {
	if sp.Type == PresDebug {
		s = strconv.Quote(s)
	}
	if prec >= 0 && runewidth.StringWidth(s) > prec {
		s = runewidth.Truncate(s, prec, "")
	}
	return writeAligned(out, "", s, width, sp, false)
}

func renderPointer(out Appender, p uintptr, sp Spec, width int) error {
	body := strconv.FormatUint(uint64(p), 16)
	prefix := "0x"
	if sp.Type == PresUpperHex {
		body = strings.ToUpper(body)
		prefix = "0X"
	}
	return writeAligned(out, prefix, body, width, sp, true)
}

// writeAligned writes prefix+body padded to width with the spec's fill and
// alignment. The default alignment is right for numeric values and left
// otherwise. Numeric alignment inserts the fill between the prefix (sign
// and base marker) and the digits. Pad amounts are measured in display
// columns, so wide characters and wide fills count for what they occupy.
func writeAligned(out Appender, prefix, body string, width int, sp Spec, numeric bool) error {
	bw := len(prefix) + runewidth.StringWidth(body)
	pad := width - bw
	if pad <= 0 {
		out.WriteString(prefix)
		out.WriteString(body)
		return nil
	}
	align := sp.Align
	if align == AlignNone {
		align = AlignLeft
		if numeric {
			align = AlignRight
		}
	}
	fill := string(sp.Fill)
	if fw := runewidth.StringWidth(fill); fw > 1 {
		pad /= fw
	}
	switch align {
	case AlignRight:
		writeFill(out, fill, pad)
		out.WriteString(prefix)
		out.WriteString(body)
	case AlignCenter:
		left := pad / 2
		writeFill(out, fill, left)
		out.WriteString(prefix)
		out.WriteString(body)
		writeFill(out, fill, pad-left)
	case AlignNumeric:
		out.WriteString(prefix)
		writeFill(out, fill, pad)
		out.WriteString(body)
	default:
		out.WriteString(prefix)
		out.WriteString(body)
		writeFill(out, fill, pad)
	}
	return nil
}

func writeFill(out Appender, fill string, n int) {
	for i := 0; i < n; i++ {
		out.WriteString(fill)
	}
}
