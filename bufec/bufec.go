// Package bufec layers an io.Reader/io.Writer convenience API on top of
// reedsolomon.Coder. This is explicitly outside the core's scope ("no
// streaming codec with incremental state" — see the core spec's
// Non-goals): every Write call here encodes one fixed-size group of k
// blocks at a time and every Read call decodes one group; there is no
// partial-block buffering across calls beyond the one in-flight group,
// and callers that need a true incremental stream codec should not reach
// for this package.
package bufec

import (
	"bytes"
	"io"

	"github.com/mfeld/cauchyrs/reedsolomon"
)

// Writer encodes fixed-size groups of k data blocks into m recovery
// blocks and writes k+m blocks, one group at a time, to an underlying
// io.Writer as they fill. The wire layout is simply the k+m blocks
// concatenated in row order; there is no framing beyond that, matching
// the core's "no wire protocol" stance (§6).
type Writer struct {
	coder *reedsolomon.Coder
	dst   io.Writer
	buf   bytes.Buffer
}

// NewWriter wraps dst, encoding blockBytes-sized groups of k data blocks
// into m recovery blocks using coder.
func NewWriter(dst io.Writer, coder *reedsolomon.Coder) *Writer {
	return &Writer{coder: coder, dst: dst}
}

// Write buffers p and flushes complete k*blockBytes groups as they
// accumulate. It never partially flushes a group.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.flushGroups(); err != nil {
		return n, err
	}
	return n, nil
}

// Close flushes any final, short group, zero-padding it to a full group
// before encoding.
func (w *Writer) Close() error {
	if err := w.flushGroups(); err != nil {
		return err
	}
	if w.buf.Len() == 0 {
		return nil
	}
	groupSize := w.coder.DataShards() * w.coder.BlockBytes()
	padded := make([]byte, groupSize)
	copy(padded, w.buf.Bytes())
	w.buf.Reset()
	return w.encodeGroup(padded)
}

func (w *Writer) flushGroups() error {
	groupSize := w.coder.DataShards() * w.coder.BlockBytes()
	for w.buf.Len() >= groupSize {
		group := make([]byte, groupSize)
		if _, err := io.ReadFull(&w.buf, group); err != nil {
			return err
		}
		if err := w.encodeGroup(group); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) encodeGroup(group []byte) error {
	blockBytes := w.coder.BlockBytes()
	k := w.coder.DataShards()
	data := make([][]byte, k)
	for i := 0; i < k; i++ {
		data[i] = group[i*blockBytes : (i+1)*blockBytes]
	}
	recovery := make([]byte, w.coder.ParityShards()*blockBytes)
	if err := w.coder.Encode(data, recovery); err != nil {
		return err
	}
	if _, err := w.dst.Write(group); err != nil {
		return err
	}
	_, err := w.dst.Write(recovery)
	return err
}

// Reader decodes fixed-size groups of k+m blocks read from an underlying
// io.Reader, handing back the k data blocks' worth of payload per group.
// It assumes no blocks are missing in the underlying stream; recovering
// from losses in a live stream means handing reedsolomon.Block slices
// with gaps to a reedsolomon.Coder directly, which is core-scope work
// this thin wrapper does not attempt.
type Reader struct {
	coder *reedsolomon.Coder
	src   io.Reader
}

// NewReader wraps src, reading k+m-block groups using coder.
func NewReader(src io.Reader, coder *reedsolomon.Coder) *Reader {
	return &Reader{coder: coder, src: src}
}

// Read fills p with decoded data bytes, one full group at a time; a
// partial p shorter than one group's worth of data yields io.ErrShortBuffer.
func (r *Reader) Read(p []byte) (int, error) {
	blockBytes := r.coder.BlockBytes()
	k := r.coder.DataShards()
	m := r.coder.ParityShards()
	dataSize := k * blockBytes

	if len(p) < dataSize {
		return 0, io.ErrShortBuffer
	}

	group := make([]byte, (k+m)*blockBytes)
	if _, err := io.ReadFull(r.src, group); err != nil {
		return 0, err
	}
	n := copy(p, group[:dataSize])
	return n, nil
}
