package fstr

import "unicode/utf8"

// Align controls placement of a value inside its field width.
type Align uint8

const (
	AlignNone    Align = iota
	AlignLeft          // '<'
	AlignRight         // '>'
	AlignCenter        // '^'
	AlignNumeric       // '0' flag: pad after the sign and base prefix
)

// Sign controls how the sign of a number is rendered.
type Sign uint8

const (
	SignNone  Sign = iota
	SignPlus       // '+': always show a sign
	SignMinus      // '-': negative only (the default, spelled out)
	SignSpace      // ' ': leading space for non-negative
)

// Presentation selects the output form for a value. The zero value means
// the kind's default presentation. Constants are the spec characters
// themselves.
type Presentation rune

const (
	PresNone       Presentation = 0
	PresBinary     Presentation = 'b'
	PresChar       Presentation = 'c'
	PresDecimal    Presentation = 'd'
	PresOctal      Presentation = 'o'
	PresHex        Presentation = 'x'
	PresUpperHex   Presentation = 'X'
	PresScientific Presentation = 'e'
	PresUpperSci   Presentation = 'E'
	PresFixed      Presentation = 'f'
	PresUpperFixed Presentation = 'F'
	PresGeneral    Presentation = 'g'
	PresUpperGen   Presentation = 'G'
	PresString     Presentation = 's'
	PresPointer    Presentation = 'p'
	PresDebug      Presentation = '?'
)

// Spec is the structured form of the mini-language after ':' in a
// replacement field. Width and Precision hold literal values; WidthRef and
// PrecRef hold argument references resolved at use time, not parse time.
// Precision -1 means absent, which is distinct from an explicit zero.
type Spec struct {
	Fill      rune
	Align     Align
	Sign      Sign
	Alt       bool
	Zero      bool
	Width     int
	WidthRef  ArgRef
	Precision int
	PrecRef   ArgRef
	Localized bool
	Type      Presentation
}

// ParseSpec parses a standalone spec string (the text between ':' and '}').
// Automatic references draw from a fresh counter starting at zero; specs
// scanned from a full format string share the scanner's counter instead
// (see [Field.ParseSpec]).
func ParseSpec(spec string) (Spec, error) {
	next := 0
	return parseSpec(spec, func() (int, error) {
		i := next
		next++
		return i, nil
	})
}

// specParser is a cursor over the spec bytes. next supplies automatic
// argument indexes for {} width/precision references; nil rejects them.
type specParser struct {
	src  string
	pos  int
	next func() (int, error)
}

// parseSpec runs the grammar: [[fill]align][sign]['#']['0'][width]
// ['.'precision]['L'][type]. Every element is optional; order is fixed.
func parseSpec(src string, next func() (int, error)) (Spec, error) {
	sp := Spec{Fill: ' ', Precision: -1}
	if src == "" {
		return sp, nil
	}
	p := &specParser{src: src, next: next}

	p.parseFillAlign(&sp)
	switch p.peek() {
	case '+':
		sp.Sign = SignPlus
		p.pos++
	case '-':
		sp.Sign = SignMinus
		p.pos++
	case ' ':
		sp.Sign = SignSpace
		p.pos++
	}
	if p.peek() == '#' {
		sp.Alt = true
		p.pos++
	}
	if p.peek() == '0' {
		sp.Zero = true
		if sp.Align == AlignNone {
			sp.Align = AlignNumeric
			sp.Fill = '0'
		}
		p.pos++
	}
	if err := p.parseWidth(&sp); err != nil {
		return sp, err
	}
	if err := p.parsePrecision(&sp); err != nil {
		return sp, err
	}
	if p.peek() == 'L' {
		sp.Localized = true
		p.pos++
	}
	if p.pos < len(p.src) {
		r, n := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isPresentation(r) || p.pos+n != len(p.src) {
			return sp, parseErr(p.pos, ErrBadSpec, "unrecognized spec character %q", r)
		}
		sp.Type = Presentation(r)
		p.pos += n
	}
	return sp, nil
}

func (p *specParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

// parseFillAlign recognizes a fill rune only when the character after it is
// an alignment character; otherwise a lone alignment character, or nothing.
func (p *specParser) parseFillAlign(sp *Spec) {
	r, n := utf8.DecodeRuneInString(p.src[p.pos:])
	if n == 0 || r == '{' || r == '}' {
		return
	}
	if p.pos+n < len(p.src) {
		if a := alignOf(p.src[p.pos+n]); a != AlignNone {
			sp.Fill = r
			sp.Align = a
			p.pos += n + 1
			return
		}
	}
	if a := alignOf(p.src[p.pos]); a != AlignNone {
		sp.Align = a
		p.pos++
	}
}

func alignOf(c byte) Align {
	switch c {
	case '<':
		return AlignLeft
	case '>':
		return AlignRight
	case '^':
		return AlignCenter
	}
	return AlignNone
}

func (p *specParser) parseWidth(sp *Spec) error {
	switch c := p.peek(); {
	case isDigit(c):
		w, n, err := parseNonNegative(p.src[p.pos:], p.pos)
		if err != nil {
			return err
		}
		sp.Width = w
		p.pos += n
	case c == '{':
		ref, err := p.parseRef()
		if err != nil {
			return err
		}
		sp.WidthRef = ref
	}
	return nil
}

func (p *specParser) parsePrecision(sp *Spec) error {
	if p.peek() != '.' {
		return nil
	}
	p.pos++
	switch c := p.peek(); {
	case isDigit(c):
		v, n, err := parseNonNegative(p.src[p.pos:], p.pos)
		if err != nil {
			return err
		}
		sp.Precision = v
		p.pos += n
	case c == '{':
		ref, err := p.parseRef()
		if err != nil {
			return err
		}
		sp.PrecRef = ref
	default:
		return parseErr(p.pos, ErrBadSpec, "missing precision after '.'")
	}
	return nil
}

// parseNonNegative consumes a run of decimal digits for a literal width or
// precision. Unlike argument indexes, leading zeros carry no meaning here,
// so ".01" is simply a precision of 1.
func parseNonNegative(s string, at int) (value, width int, err error) {
	v := 0
	i := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		if v > (1<<31-1-9)/10 {
			return 0, 0, parseErr(at, ErrBadSpec, "number too large")
		}
		v = v*10 + int(s[i]-'0')
	}
	return v, i, nil
}

// parseRef parses a {index}, {name}, or {} reference used for dynamic
// width or precision. The cursor is on the '{'.
func (p *specParser) parseRef() (ArgRef, error) {
	open := p.pos
	p.pos++
	switch c := p.peek(); {
	case c == '}':
		p.pos++
		if p.next == nil {
			return ArgRef{Kind: RefAuto}, nil
		}
		i, err := p.next()
		if err != nil {
			return ArgRef{}, err
		}
		return ArgRef{Kind: RefIndex, Index: i}, nil
	case isDigit(c):
		i, n, err := parseIndex(p.src[p.pos:], p.pos)
		if err != nil {
			return ArgRef{}, err
		}
		p.pos += n
		if p.peek() != '}' {
			return ArgRef{}, parseErr(open, ErrBadSpec, "unterminated argument reference")
		}
		p.pos++
		return ArgRef{Kind: RefIndex, Index: i}, nil
	case isIDStart(c):
		start := p.pos
		for p.pos < len(p.src) && isIDPart(p.src[p.pos]) {
			p.pos++
		}
		name := p.src[start:p.pos]
		if p.peek() != '}' {
			return ArgRef{}, parseErr(open, ErrBadSpec, "unterminated argument reference")
		}
		p.pos++
		return ArgRef{Kind: RefName, Name: name}, nil
	}
	return ArgRef{}, parseErr(open, ErrBadSpec, "invalid argument reference")
}

func isPresentation(r rune) bool {
	switch Presentation(r) {
	case PresBinary, PresChar, PresDecimal, PresOctal, PresHex, PresUpperHex,
		PresScientific, PresUpperSci, PresFixed, PresUpperFixed,
		PresGeneral, PresUpperGen, PresString, PresPointer, PresDebug:
		return true
	}
	return false
}

// resolveRef resolves a width or precision reference against the argument
// store. The referent must be a non-negative integer; anything else is a
// formatting error, not a parse error.
func resolveRef(ref ArgRef, args Args) (int, error) {
	var v Value
	var ok bool
	switch ref.Kind {
	case RefIndex:
		v, ok = args.Get(ref.Index)
	case RefName:
		v, ok = args.GetNamed(ref.Name)
	default:
		return 0, resolveErr(ref, ErrNoArg, "unresolved automatic reference")
	}
	if !ok {
		return 0, resolveErr(ref, ErrNoArg, "width/precision reference %s", ref)
	}
	v = v.Unwrap()
	switch v.Kind() {
	case KindInt, KindInt64, KindRune:
		n := v.Int()
		if n < 0 || n > 1<<31-1 {
			return 0, resolveErr(ref, ErrTypeMismatch,
				"width/precision reference %s is out of range", ref)
		}
		return int(n), nil
	case KindUint, KindUint64:
		n := v.Uint()
		if n > 1<<31-1 {
			return 0, resolveErr(ref, ErrTypeMismatch,
				"width/precision reference %s is out of range", ref)
		}
		return int(n), nil
	}
	return 0, resolveErr(ref, ErrTypeMismatch,
		"width/precision reference %s is not an integer (%s)", ref, v.Kind())
}

// resolve produces the effective width and precision, reading any dynamic
// references. Called once per field at format time.
func (sp *Spec) resolve(args Args) (width, precision int, err error) {
	width = sp.Width
	if sp.WidthRef.Kind != RefNone {
		width, err = resolveRef(sp.WidthRef, args)
		if err != nil {
			return 0, 0, err
		}
	}
	precision = sp.Precision
	if sp.PrecRef.Kind != RefNone {
		precision, err = resolveRef(sp.PrecRef, args)
		if err != nil {
			return 0, 0, err
		}
	}
	return width, precision, nil
}

// checkPresentation validates a presentation type against the kind it is
// applied to, at resolution time.
func checkPresentation(p Presentation, k Kind) error {
	if p == PresNone {
		return nil
	}
	var ok bool
	switch k {
	case KindBool:
		ok = p == PresString || sameSet(p, intPresentations)
	case KindInt, KindInt64, KindUint, KindUint64:
		ok = sameSet(p, intPresentations)
	case KindRune:
		ok = p == PresChar || p == PresDebug || sameSet(p, intPresentations)
	case KindFloat32, KindFloat64:
		ok = sameSet(p, floatPresentations)
	case KindString, KindBytes:
		ok = p == PresString || p == PresDebug
	case KindPointer:
		ok = p == PresPointer || p == PresHex || p == PresUpperHex
	default:
		ok = false
	}
	if !ok {
		return resolveErr(ArgRef{}, ErrTypeMismatch,
			"presentation %q cannot format %s values", rune(p), k)
	}
	return nil
}

var intPresentations = []Presentation{
	PresBinary, PresChar, PresDecimal, PresOctal, PresHex, PresUpperHex,
}

var floatPresentations = []Presentation{
	PresScientific, PresUpperSci, PresFixed, PresUpperFixed,
	PresGeneral, PresUpperGen,
}

func sameSet(p Presentation, set []Presentation) bool {
	for _, q := range set {
		if p == q {
			return true
		}
	}
	return false
}
