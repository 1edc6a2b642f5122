package fstr_test

import (
	"testing"

	"github.com/fstr-go/fstr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseSpec(t *testing.T, spec string) fstr.Spec {
	t.Helper()
	sp, err := fstr.ParseSpec(spec)
	require.NoError(t, err, "spec %q", spec)
	return sp
}

func TestParseSpecDefaults(t *testing.T) {
	t.Parallel()
	sp := mustParseSpec(t, "")
	assert.Equal(t, ' ', sp.Fill)
	assert.Equal(t, fstr.AlignNone, sp.Align)
	assert.Equal(t, fstr.SignNone, sp.Sign)
	assert.False(t, sp.Alt)
	assert.False(t, sp.Zero)
	assert.Equal(t, 0, sp.Width)
	assert.Equal(t, -1, sp.Precision, "absent precision is distinct from zero")
	assert.False(t, sp.Localized)
	assert.Equal(t, fstr.PresNone, sp.Type)
}

func TestParseSpecAlign(t *testing.T) {
	t.Parallel()
	assert.Equal(t, fstr.AlignLeft, mustParseSpec(t, "<").Align)
	assert.Equal(t, fstr.AlignRight, mustParseSpec(t, ">").Align)
	assert.Equal(t, fstr.AlignCenter, mustParseSpec(t, "^").Align)
}

func TestParseSpecFill(t *testing.T) {
	t.Parallel()
	sp := mustParseSpec(t, "*^")
	assert.Equal(t, '*', sp.Fill)
	assert.Equal(t, fstr.AlignCenter, sp.Align)

	// A fill rune is only recognized immediately before an alignment char.
	sp = mustParseSpec(t, "*<8")
	assert.Equal(t, '*', sp.Fill)
	assert.Equal(t, fstr.AlignLeft, sp.Align)
	assert.Equal(t, 8, sp.Width)

	sp = mustParseSpec(t, "é>3")
	assert.Equal(t, 'é', sp.Fill, "fill may be any rune")
	assert.Equal(t, fstr.AlignRight, sp.Align)
}

func TestParseSpecSign(t *testing.T) {
	t.Parallel()
	assert.Equal(t, fstr.SignPlus, mustParseSpec(t, "+").Sign)
	assert.Equal(t, fstr.SignMinus, mustParseSpec(t, "-").Sign)
	assert.Equal(t, fstr.SignSpace, mustParseSpec(t, " ").Sign)
}

func TestParseSpecAltAndZero(t *testing.T) {
	t.Parallel()
	assert.True(t, mustParseSpec(t, "#").Alt)

	sp := mustParseSpec(t, "0")
	assert.True(t, sp.Zero)
	assert.Equal(t, fstr.AlignNumeric, sp.Align, "'0' implies numeric alignment")
	assert.Equal(t, '0', sp.Fill)

	sp = mustParseSpec(t, "<0")
	assert.True(t, sp.Zero)
	assert.Equal(t, fstr.AlignLeft, sp.Align, "explicit alignment wins over '0'")
}

func TestParseSpecWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 42, mustParseSpec(t, "42").Width)

	sp := mustParseSpec(t, "{42}")
	assert.Equal(t, fstr.RefIndex, sp.WidthRef.Kind)
	assert.Equal(t, 42, sp.WidthRef.Index)

	sp = mustParseSpec(t, "{w}")
	assert.Equal(t, fstr.RefName, sp.WidthRef.Kind)
	assert.Equal(t, "w", sp.WidthRef.Name)

	sp = mustParseSpec(t, "{}")
	assert.Equal(t, fstr.RefIndex, sp.WidthRef.Kind)
	assert.Equal(t, 0, sp.WidthRef.Index, "standalone parse starts its own counter")

	sp = mustParseSpec(t, "007")
	assert.True(t, sp.Zero)
	assert.Equal(t, 7, sp.Width, "digits after the '0' flag may themselves start with zero")
}

func TestParseSpecPrecision(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 42, mustParseSpec(t, ".42").Precision)
	assert.Equal(t, 0, mustParseSpec(t, ".0").Precision)
	assert.Equal(t, 1, mustParseSpec(t, ".01").Precision, "leading zeros are not argument indexes")

	sp := mustParseSpec(t, ".{42}")
	assert.Equal(t, fstr.RefIndex, sp.PrecRef.Kind)
	assert.Equal(t, 42, sp.PrecRef.Index)

	_, err := fstr.ParseSpec(".")
	assert.ErrorIs(t, err, fstr.ErrBadSpec)
	_, err = fstr.ParseSpec(".x")
	assert.ErrorIs(t, err, fstr.ErrBadSpec)
}

func TestParseSpecLocalizedAndType(t *testing.T) {
	t.Parallel()
	assert.True(t, mustParseSpec(t, "L").Localized)
	assert.Equal(t, fstr.PresFixed, mustParseSpec(t, "f").Type)
	assert.Equal(t, fstr.PresUpperHex, mustParseSpec(t, "X").Type)
	assert.Equal(t, fstr.PresDebug, mustParseSpec(t, "?").Type)

	sp := mustParseSpec(t, "Lx")
	assert.True(t, sp.Localized)
	assert.Equal(t, fstr.PresHex, sp.Type)
}

func TestParseSpecFullGrammar(t *testing.T) {
	t.Parallel()
	sp := mustParseSpec(t, "*<+#08.3Lf")
	assert.Equal(t, '*', sp.Fill)
	assert.Equal(t, fstr.AlignLeft, sp.Align)
	assert.Equal(t, fstr.SignPlus, sp.Sign)
	assert.True(t, sp.Alt)
	assert.True(t, sp.Zero)
	assert.Equal(t, 8, sp.Width)
	assert.Equal(t, 3, sp.Precision)
	assert.True(t, sp.Localized)
	assert.Equal(t, fstr.PresFixed, sp.Type)
}

func TestParseSpecUnknownCharacter(t *testing.T) {
	t.Parallel()
	for _, spec := range []string{"q", "42q", "ff", "d?"} {
		_, err := fstr.ParseSpec(spec)
		assert.ErrorIs(t, err, fstr.ErrBadSpec, "spec %q", spec)
	}
}

func TestParseSpecUnterminatedRef(t *testing.T) {
	t.Parallel()
	for _, spec := range []string{"{42", "{w", ".{1"} {
		_, err := fstr.ParseSpec(spec)
		assert.ErrorIs(t, err, fstr.ErrBadSpec, "spec %q", spec)
	}
}

func TestParseSpecWidthRoundTrip(t *testing.T) {
	t.Parallel()
	sp := mustParseSpec(t, "42")
	assert.Equal(t, 42, sp.Width, "literal width round-trips exactly")
	sp = mustParseSpec(t, ".7")
	assert.Equal(t, 7, sp.Precision)
}
