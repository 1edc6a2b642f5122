package fstr

import "unicode/utf8"

// GrowFunc is called when a Buffer needs more capacity. The callback may
// install larger storage via [Buffer.Set], possibly relocating the existing
// contents, or it may leave the buffer unchanged to refuse growth. Granting
// less than requested is not an error: the pending write is truncated to
// whatever fits.
type GrowFunc func(b *Buffer, capacity int)

// Buffer is an append-only byte sink over externally owned storage with a
// registered growth strategy. It is the single output abstraction the
// formatting engine writes through; concrete sinks ([ByteBuffer],
// [FixedBuffer], or any caller-provided storage) configure it with a
// [GrowFunc].
//
// Invariants: Len() <= Cap() at all times, and capacity changes only inside
// the grow callback. A Buffer must not be copied after first use; its
// identity is what the grow callback receives.
type Buffer struct {
	data []byte // backing storage; len(data) is the capacity
	size int
	grow GrowFunc
}

// NewBuffer returns a Buffer over data with the given growth strategy.
// A nil grow callback means the buffer can never grow beyond len(data);
// writes past capacity are dropped.
func NewBuffer(data []byte, grow GrowFunc) *Buffer {
	return &Buffer{data: data, grow: grow}
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return b.size }

// Cap returns the current capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Bytes returns the written prefix of the backing storage. The slice aliases
// the buffer and is invalidated by further writes.
func (b *Buffer) Bytes() []byte { return b.data[:b.size] }

// String returns the written bytes as a string.
func (b *Buffer) String() string { return string(b.data[:b.size]) }

// Set replaces the backing storage. It is intended to be called from a
// [GrowFunc]; the callback is responsible for carrying over the first Len()
// bytes if it relocates. The written size is clamped to the new capacity.
func (b *Buffer) Set(data []byte) {
	b.data = data
	if b.size > len(data) {
		b.size = len(data)
	}
}

// TruncateTo resets the written size to n without touching capacity or the
// bytes beyond n. It is a logical clear, not a deallocation. n is clamped
// to [0, Len()].
func (b *Buffer) TruncateTo(n int) {
	if n < 0 {
		n = 0
	}
	if n < b.size {
		b.size = n
	}
}

// tryGrow invokes the growth callback once with the requested capacity.
// The callback may grant all, part, or none of the request.
func (b *Buffer) tryGrow(capacity int) {
	if b.grow != nil {
		b.grow(b, capacity)
	}
}

// writeByte appends a single byte, growing by one if full. The byte is
// dropped if growth is refused.
func (b *Buffer) writeByte(c byte) {
	if b.size == len(b.data) {
		b.tryGrow(b.size + 1)
		if b.size == len(b.data) {
			return
		}
	}
	b.data[b.size] = c
	b.size++
}

// writeString appends s, invoking growth at most once. If the granted
// capacity does not cover the whole string, the write is truncated to the
// grantable suffix; bookkeeping stays valid either way.
func (b *Buffer) writeString(s string) {
	if b.size+len(s) > len(b.data) {
		b.tryGrow(b.size + len(s))
	}
	n := copy(b.data[b.size:], s)
	b.size += n
}

// write appends p with the same single-growth, truncate-on-partial-grant
// contract as writeString.
func (b *Buffer) write(p []byte) {
	if b.size+len(p) > len(b.data) {
		b.tryGrow(b.size + len(p))
	}
	n := copy(b.data[b.size:], p)
	b.size += n
}

// Appender is a write cursor over a [Buffer]: the only way code outside the
// buffer appends to it. It implements io.Writer, io.StringWriter, and
// io.ByteWriter so stdlib helpers can write through it.
//
// Write methods never return an error. A sink that refuses growth absorbs
// the overflow silently; truncation is observable on the sink (final Len
// versus requested length, or [FixedBuffer.Truncated]), not on the cursor.
type Appender struct {
	buf *Buffer
}

// NewAppender returns a cursor over b.
func NewAppender(b *Buffer) Appender { return Appender{buf: b} }

// Buffer returns the underlying sink.
func (a Appender) Buffer() *Buffer { return a.buf }

func (a Appender) Write(p []byte) (int, error) {
	a.buf.write(p)
	return len(p), nil
}

func (a Appender) WriteString(s string) (int, error) {
	a.buf.writeString(s)
	return len(s), nil
}

func (a Appender) WriteByte(c byte) error {
	a.buf.writeByte(c)
	return nil
}

func (a Appender) WriteRune(r rune) (int, error) {
	if r < 0x80 {
		a.buf.writeByte(byte(r))
		return 1, nil
	}
	var tmp [4]byte
	enc := utf8.AppendRune(tmp[:0], r)
	a.buf.write(enc)
	return len(enc), nil
}

// ByteBuffer is a heap-growable sink with amortized doubling, the default
// destination for [Format].
type ByteBuffer struct {
	Buffer
}

// NewByteBuffer returns an empty growable sink.
func NewByteBuffer() *ByteBuffer {
	b := &ByteBuffer{}
	b.grow = growByteBuffer
	return b
}

func growByteBuffer(b *Buffer, capacity int) {
	newCap := 2 * len(b.data)
	if newCap < capacity {
		newCap = capacity
	}
	if newCap < 32 {
		newCap = 32
	}
	data := make([]byte, newCap)
	copy(data, b.data[:b.size])
	b.Set(data)
}

// FixedBuffer is a sink over a caller-owned slice that never grows. Appends
// beyond capacity are dropped and recorded: Truncated reports whether any
// write did not fit.
type FixedBuffer struct {
	Buffer
	truncated bool
}

// NewFixedBuffer returns a sink writing into data.
func NewFixedBuffer(data []byte) *FixedBuffer {
	b := &FixedBuffer{}
	b.data = data
	b.grow = b.refuse
	return b
}

// refuse is the FixedBuffer growth strategy: keep the existing capacity.
// Growth is only requested when a write does not fit, so any call here
// means output was (or is about to be) dropped.
func (b *FixedBuffer) refuse(*Buffer, int) {
	b.truncated = true
}

// Truncated reports whether any write overflowed the fixed capacity.
func (b *FixedBuffer) Truncated() bool { return b.truncated }
