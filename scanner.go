package fstr

import (
	"errors"
	"iter"
	"strconv"
	"strings"
)

// RefKind identifies how a replacement field or a width/precision reference
// names its argument.
type RefKind uint8

const (
	RefNone  RefKind = iota // no reference present
	RefAuto                 // {}: next unused positional index
	RefIndex                // {0}
	RefName                 // {name}
)

// ArgRef is a reference to an argument: positional, named, or automatic.
// The scanner resolves automatic field references against its own counter,
// so handlers observe RefIndex or RefName; RefAuto survives only inside
// specs parsed without a scanner.
type ArgRef struct {
	Kind  RefKind
	Index int
	Name  string
}

func (r ArgRef) String() string {
	switch r.Kind {
	case RefIndex:
		return "{" + strconv.Itoa(r.Index) + "}"
	case RefName:
		return "{" + r.Name + "}"
	case RefAuto:
		return "{}"
	}
	return "{?}"
}

// Field is one scanned replacement field: the argument reference, the raw
// spec bytes between ':' and the closing '}', and the byte offset of the
// opening '{' in the format string.
type Field struct {
	Ref  ArgRef
	Spec string
	Pos  int

	specPos int
	next    func() (int, error) // scanner's auto-increment counter
}

// ParseSpec runs the spec grammar over the field's raw spec. Automatic
// width and precision references ({}) draw from the same scanner-local
// counter as automatic field references, preserving left-to-right
// consumption order.
func (f Field) ParseSpec() (Spec, error) {
	sp, err := parseSpec(f.Spec, f.next)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Pos += f.specPos
		}
	}
	return sp, err
}

// Handler receives scan events. The same scanner serves eager formatting
// and validation-only callers; the handler, not the scanner, decides
// whether any output is materialized.
//
// OnText receives maximal literal runs (escaped braces are delivered as
// part of a run, already unescaped). OnField receives each replacement
// field in format-string order; a non-nil return aborts the scan and is
// returned from [Scan] unchanged. OnError is called at most once, with the
// position of the first syntax error; the scan stops there.
type Handler interface {
	OnText(text string)
	OnField(f Field) error
	OnError(pos int, err error)
}

type indexMode uint8

const (
	modeUnset indexMode = iota
	modeAuto
	modeManual
)

// scanner holds per-invocation state: cursor position, the auto-increment
// counter, and whether the string has committed to automatic or manual
// indexing. Nothing is shared between invocations.
type scanner struct {
	src  string
	pos  int
	next int
	mode indexMode
}

// nextIndex consumes the next automatic argument index. Switching from
// explicit to automatic indexing is an error.
func (s *scanner) nextIndex() (int, error) {
	if s.mode == modeManual {
		return 0, parseErr(s.pos, ErrBadFormat,
			"cannot mix automatic and explicit argument indexing")
	}
	s.mode = modeAuto
	i := s.next
	s.next++
	return i, nil
}

// markManual records an explicit field index. Switching from automatic to
// explicit indexing is an error. Width and precision references do not
// pass through here: an automatic field may size itself from an explicit
// argument.
func (s *scanner) markManual() error {
	if s.mode == modeAuto {
		return parseErr(s.pos, ErrBadFormat,
			"cannot mix automatic and explicit argument indexing")
	}
	s.mode = modeManual
	return nil
}

// Scan runs the format-string state machine over format, driving h. It
// returns the first parse error (also reported through h.OnError) or the
// first error returned by h.OnField; nil means the whole string was
// consumed. Auto-increment state is local to this call.
func Scan(format string, h Handler) error {
	s := &scanner{src: format}
	for s.pos < len(s.src) {
		start := s.pos
		rel := strings.IndexAny(s.src[s.pos:], "{}")
		if rel < 0 {
			h.OnText(s.src[start:])
			return nil
		}
		brace := s.pos + rel
		if s.src[brace] == '}' {
			if brace+1 < len(s.src) && s.src[brace+1] == '}' {
				h.OnText(s.src[start : brace+1])
				s.pos = brace + 2
				continue
			}
			err := parseErr(brace, ErrBadFormat, "unmatched '}' in format string")
			h.OnError(brace, err)
			return err
		}
		if brace+1 < len(s.src) && s.src[brace+1] == '{' {
			h.OnText(s.src[start : brace+1])
			s.pos = brace + 2
			continue
		}
		if start < brace {
			h.OnText(s.src[start:brace])
		}
		f, err := s.scanField(brace)
		if err != nil {
			pos := s.pos
			var pe *ParseError
			if errors.As(err, &pe) {
				pos = pe.Pos
			}
			h.OnError(pos, err)
			return err
		}
		if err := h.OnField(f); err != nil {
			return err
		}
	}
	return nil
}

// scanField parses one replacement field starting at the '{' at offset
// open. On success the cursor is past the closing '}'.
func (s *scanner) scanField(open int) (Field, error) {
	s.pos = open + 1
	ref, err := s.scanArgRef()
	if err != nil {
		return Field{}, err
	}
	f := Field{Ref: ref, Pos: open, next: s.nextIndex}
	if s.pos >= len(s.src) {
		return Field{}, parseErr(open, ErrBadFormat, "unterminated replacement field")
	}
	switch s.src[s.pos] {
	case '}':
		s.pos++
		return f, nil
	case ':':
		specStart := s.pos + 1
		end, ok := specEnd(s.src, specStart)
		if !ok {
			return Field{}, parseErr(open, ErrBadFormat, "unterminated replacement field")
		}
		f.Spec = s.src[specStart:end]
		f.specPos = specStart
		s.pos = end + 1
		return f, nil
	}
	return Field{}, parseErr(s.pos, ErrBadFormat,
		"expected ':' or '}' after argument id, found %q", s.src[s.pos])
}

// scanArgRef reads the optional argument id after '{': digits, an
// identifier, or nothing (automatic).
func (s *scanner) scanArgRef() (ArgRef, error) {
	if s.pos >= len(s.src) {
		return ArgRef{}, parseErr(s.pos-1, ErrBadFormat, "unterminated replacement field")
	}
	switch c := s.src[s.pos]; {
	case c == '}' || c == ':':
		i, err := s.nextIndex()
		if err != nil {
			return ArgRef{}, err
		}
		return ArgRef{Kind: RefIndex, Index: i}, nil
	case isDigit(c):
		i, n, err := parseIndex(s.src[s.pos:], s.pos)
		if err != nil {
			return ArgRef{}, err
		}
		s.pos += n
		if err := s.markManual(); err != nil {
			return ArgRef{}, err
		}
		return ArgRef{Kind: RefIndex, Index: i}, nil
	case isIDStart(c):
		start := s.pos
		for s.pos < len(s.src) && isIDPart(s.src[s.pos]) {
			s.pos++
		}
		return ArgRef{Kind: RefName, Name: s.src[start:s.pos]}, nil
	}
	return ArgRef{}, parseErr(s.pos, ErrBadFormat,
		"invalid argument id, found %q", s.src[s.pos])
}

// specEnd finds the '}' closing the spec that begins at start, skipping
// one level of nested braces for width and precision references.
func specEnd(src string, start int) (int, bool) {
	depth := 0
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// parseIndex parses a non-negative decimal index at the start of s.
// A leading zero is only valid as the index 0 itself.
func parseIndex(s string, at int) (value, width int, err error) {
	if s[0] == '0' {
		if len(s) > 1 && isDigit(s[1]) {
			return 0, 0, parseErr(at, ErrBadFormat, "argument index with leading zero")
		}
		return 0, 1, nil
	}
	v := 0
	i := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		if v > (1<<31-1-9)/10 {
			return 0, 0, parseErr(at, ErrBadFormat, "argument index too large")
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, i, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIDStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIDPart(c byte) bool { return isIDStart(c) || isDigit(c) }

// errFieldsStop signals that a Fields consumer stopped early; it never
// escapes the iterator.
var errFieldsStop = errors.New("fstr: field iteration stopped")

type fieldsHandler struct {
	yield   func(Field, error) bool
	yielded bool // an error was already delivered through yield
}

func (h *fieldsHandler) OnText(string) {}

func (h *fieldsHandler) OnField(f Field) error {
	if !h.yield(f, nil) {
		return errFieldsStop
	}
	return nil
}

func (h *fieldsHandler) OnError(_ int, err error) {
	h.yielded = true
	h.yield(Field{}, err)
}

// Fields returns an iterator over the replacement fields of format, in
// order. A syntax error is yielded as the final element's error, after
// which iteration stops. Literal text is skipped; use [Scan] with a
// custom [Handler] to observe it.
func Fields(format string) iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		h := &fieldsHandler{yield: yield}
		err := Scan(format, h)
		if err != nil && !h.yielded && !errors.Is(err, errFieldsStop) {
			yield(Field{}, err)
		}
	}
}
