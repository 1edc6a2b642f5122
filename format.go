package fstr

// Result reports the outcome of formatting into fixed storage.
type Result struct {
	// N is the number of bytes written.
	N int
	// Truncated reports whether output was dropped for lack of capacity.
	Truncated bool
}

// formatHandler drives eager formatting: literal runs go straight to the
// sink, fields are resolved against the argument store and rendered. A
// returned error aborts the rest of the scan, so a failed call never mixes
// an error with silently successful trailing output.
type formatHandler struct {
	out  Appender
	args Args
}

func (h *formatHandler) OnText(text string) {
	h.out.WriteString(text)
}

func (h *formatHandler) OnField(f Field) error {
	var v Value
	var ok bool
	switch f.Ref.Kind {
	case RefIndex:
		v, ok = h.args.Get(f.Ref.Index)
	case RefName:
		v, ok = h.args.GetNamed(f.Ref.Name)
	}
	if !ok {
		return resolveErr(f.Ref, ErrNoArg, "field %s has no matching argument", f.Ref)
	}
	v = v.Unwrap()
	if v.Kind() == KindCustom {
		// The spec belongs to the custom type's own mini-language; hand it
		// over unparsed.
		return v.Handle().Format(h.out, f.Spec, h.args)
	}
	sp, err := f.ParseSpec()
	if err != nil {
		return err
	}
	return renderValue(h.out, v, sp, h.args)
}

func (h *formatHandler) OnError(int, error) {}

// FormatBuffer formats args per format into an existing sink. This is the
// boundary for callers that own their storage: any [Buffer], with any
// growth strategy, can be the destination.
func FormatBuffer(b *Buffer, format string, args ...any) error {
	h := &formatHandler{out: NewAppender(b), args: MakeArgs(args...)}
	return Scan(format, h)
}

// Format renders args per format into a new string.
func Format(format string, args ...any) (string, error) {
	b := NewByteBuffer()
	if err := FormatBuffer(&b.Buffer, format, args...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// AppendFormat renders args per format and appends the output to dst,
// returning the extended slice.
func AppendFormat(dst []byte, format string, args ...any) ([]byte, error) {
	b := NewByteBuffer()
	b.Set(dst[len(dst):cap(dst)])
	if err := FormatBuffer(&b.Buffer, format, args...); err != nil {
		return dst, err
	}
	return append(dst, b.Bytes()...), nil
}

// FormatTo renders args per format into dst, truncating if the output does
// not fit. The result carries the byte count and whether truncation
// occurred; a truncated write is not an error.
func FormatTo(dst []byte, format string, args ...any) (Result, error) {
	b := NewFixedBuffer(dst)
	if err := FormatBuffer(&b.Buffer, format, args...); err != nil {
		return Result{N: b.Len(), Truncated: b.Truncated()}, err
	}
	return Result{N: b.Len(), Truncated: b.Truncated()}, nil
}

// validateHandler checks syntax only: field ids and the standard spec
// grammar, with no arguments and no output.
type validateHandler struct{}

func (validateHandler) OnText(string) {}

func (validateHandler) OnField(f Field) error {
	_, err := f.ParseSpec()
	return err
}

func (validateHandler) OnError(int, error) {}

// Validate reports whether format is syntactically well-formed: balanced
// braces, valid argument ids, no mixed automatic and explicit indexing,
// and specs that parse under the standard grammar. Argument availability
// and presentation compatibility are use-time properties and are not
// checked here, so Validate needs no arguments and writes nothing.
//
// Custom types may define spec mini-languages the standard grammar does
// not cover; formatting such a field can succeed even though Validate
// rejects the spec.
func Validate(format string) error {
	return Scan(format, validateHandler{})
}
