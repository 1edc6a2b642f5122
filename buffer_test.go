package fstr_test

import (
	"testing"

	"github.com/fstr-go/fstr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBuffer wires a grow callback that records every requested
// capacity and grants according to a script: each call takes the next
// granted capacity, relocating if it is larger than the current one.
func recordingBuffer(data []byte, grants ...int) (*fstr.Buffer, *[]int) {
	requests := &[]int{}
	b := fstr.NewBuffer(data, func(buf *fstr.Buffer, capacity int) {
		*requests = append(*requests, capacity)
		if len(grants) == 0 {
			return
		}
		granted := grants[0]
		grants = grants[1:]
		if granted > buf.Cap() {
			next := make([]byte, granted)
			copy(next, buf.Bytes())
			buf.Set(next)
		}
	})
	return b, requests
}

func TestBufferZero(t *testing.T) {
	t.Parallel()
	b := fstr.NewBuffer(nil, nil)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())
	assert.Empty(t, b.Bytes())
}

func TestBufferAppendWithinCapacity(t *testing.T) {
	t.Parallel()
	b, requests := recordingBuffer(make([]byte, 10))
	out := fstr.NewAppender(b)
	_, err := out.WriteString("test")
	require.NoError(t, err)
	assert.Equal(t, "test", b.String())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 10, b.Cap())
	assert.Empty(t, *requests, "no growth while the write fits")
}

func TestBufferAppendGrowsOncePerCall(t *testing.T) {
	t.Parallel()
	b, requests := recordingBuffer(make([]byte, 10), 19)
	out := fstr.NewAppender(b)
	out.WriteString("0123456789")
	require.Empty(t, *requests)
	out.WriteString("abcdefghi")
	assert.Equal(t, []int{19}, *requests, "one request sized to size+len(p)")
	assert.Equal(t, "0123456789abcdefghi", b.String())
}

func TestBufferPartialGrantTruncates(t *testing.T) {
	t.Parallel()
	b, requests := recordingBuffer(make([]byte, 10), 12)
	out := fstr.NewAppender(b)
	out.WriteString("0123456789abcde")
	assert.Equal(t, []int{15}, *requests)
	assert.Equal(t, "0123456789ab", b.String(), "write truncated to the granted capacity")
	assert.Equal(t, 12, b.Len())
	assert.Equal(t, 12, b.Cap())
	assert.LessOrEqual(t, b.Len(), b.Cap())
}

func TestBufferRefusedGrowthDropsBytes(t *testing.T) {
	t.Parallel()
	b, _ := recordingBuffer(make([]byte, 4))
	out := fstr.NewAppender(b)
	out.WriteString("abcdef")
	assert.Equal(t, "abcd", b.String())
	require.NoError(t, out.WriteByte('x'))
	assert.Equal(t, "abcd", b.String(), "single-byte append dropped at capacity")
	assert.LessOrEqual(t, b.Len(), b.Cap())
}

func TestBufferPanickingGrowLeavesSizeValid(t *testing.T) {
	t.Parallel()
	b := fstr.NewBuffer(make([]byte, 2), func(*fstr.Buffer, int) {
		panic("no more memory")
	})
	out := fstr.NewAppender(b)
	out.WriteString("ab")

	assert.PanicsWithValue(t, "no more memory", func() {
		out.WriteString("cdef")
	})
	assert.Equal(t, "ab", b.String(), "nothing written by the aborted append")
	assert.LessOrEqual(t, b.Len(), b.Cap())

	assert.PanicsWithValue(t, "no more memory", func() {
		out.WriteByte('x')
	})
	assert.Equal(t, 2, b.Len())
}

func TestBufferTruncateTo(t *testing.T) {
	t.Parallel()
	b, _ := recordingBuffer(make([]byte, 10))
	out := fstr.NewAppender(b)
	out.WriteString("hello")
	b.TruncateTo(2)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 10, b.Cap(), "logical clear keeps capacity")
	out.WriteString("y")
	assert.Equal(t, "hey", b.String())

	b.TruncateTo(100)
	assert.Equal(t, 3, b.Len(), "truncate never grows the size")
	b.TruncateTo(-1)
	assert.Equal(t, 0, b.Len())
}

func TestAppenderWriteRune(t *testing.T) {
	t.Parallel()
	b := fstr.NewByteBuffer()
	out := fstr.NewAppender(&b.Buffer)
	n, err := out.WriteRune('é')
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = out.WriteRune('x')
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "éx", b.String())
}

func TestByteBufferGrows(t *testing.T) {
	t.Parallel()
	b := fstr.NewByteBuffer()
	out := fstr.NewAppender(&b.Buffer)
	for i := 0; i < 100; i++ {
		out.WriteString("0123456789")
	}
	assert.Equal(t, 1000, b.Len())
	assert.GreaterOrEqual(t, b.Cap(), 1000)
	assert.Equal(t, "0123456789", b.String()[990:])
}

func TestFixedBufferExactFit(t *testing.T) {
	t.Parallel()
	b := fstr.NewFixedBuffer(make([]byte, 4))
	out := fstr.NewAppender(&b.Buffer)
	out.WriteString("abcd")
	assert.Equal(t, "abcd", b.String())
	assert.False(t, b.Truncated(), "an exact fill requests no growth")
}

func TestFixedBufferOverflow(t *testing.T) {
	t.Parallel()
	b := fstr.NewFixedBuffer(make([]byte, 4))
	out := fstr.NewAppender(&b.Buffer)
	out.WriteString("abcdef")
	assert.Equal(t, "abcd", b.String())
	assert.True(t, b.Truncated())
	assert.Equal(t, 4, b.Len())
}
