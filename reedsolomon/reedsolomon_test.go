package reedsolomon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(seed byte, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i)
	}
	return b
}

func encodeAll(t *testing.T, c *Coder, data [][]byte) [][]byte {
	t.Helper()
	recovery := make([]byte, c.m*c.blockBytes)
	require.NoError(t, c.Encode(data, recovery))
	out := make([][]byte, c.m)
	for i := range out {
		out[i] = recovery[i*c.blockBytes : (i+1)*c.blockBytes]
	}
	return out
}

func dataBlockByRow(blocks []Block, row int) []byte {
	for _, b := range blocks {
		if b.Row == row && b.Present() {
			return b.Payload
		}
	}
	return nil
}

// S1: k=2, m=2, drop both data blocks, decode from recovery alone.
func TestScenarioS1(t *testing.T) {
	c, err := New(2, 2, 8)
	require.NoError(t, err)

	data := [][]byte{
		{1, 2, 3, 4, 5, 6, 7, 8},
		{9, 10, 11, 12, 13, 14, 15, 16},
	}
	recovery := encodeAll(t, c, data)

	blocks := []Block{
		{Row: 0, Payload: nil},
		{Row: 1, Payload: nil},
		{Row: 2, Payload: recovery[0]},
		{Row: 3, Payload: recovery[1]},
	}
	require.NoError(t, c.Decode(blocks))
	assert.Equal(t, data[0], dataBlockByRow(blocks, 0))
	assert.Equal(t, data[1], dataBlockByRow(blocks, 1))
}

// S2: k=4, m=2; every choice of up to 2 lost blocks among the 6 must
// still decode.
func TestScenarioS2(t *testing.T) {
	c, err := New(4, 2, 8)
	require.NoError(t, err)

	data := [][]byte{
		pattern(0x10, 8),
		pattern(0x20, 8),
		pattern(0x30, 8),
		pattern(0x40, 8),
	}
	recovery := encodeAll(t, c, data)
	full := func() []Block {
		blocks := make([]Block, 6)
		for i := 0; i < 4; i++ {
			blocks[i] = Block{Row: i, Payload: append([]byte(nil), data[i]...)}
		}
		for i := 0; i < 2; i++ {
			blocks[4+i] = Block{Row: 4 + i, Payload: append([]byte(nil), recovery[i]...)}
		}
		return blocks
	}

	for a := 0; a < 6; a++ {
		for b := a; b < 6; b++ {
			blocks := full()
			blocks[a].Payload = nil
			if b != a {
				blocks[b].Payload = nil
			}
			require.NoErrorf(t, c.Decode(blocks), "lost %d,%d", a, b)
			for i := 0; i < 4; i++ {
				assert.Equalf(t, data[i], dataBlockByRow(blocks, i), "lost %d,%d row %d", a, b, i)
			}
		}
	}
}

// S3: no losses, decode must be a no-op and must not read recovery.
func TestScenarioS3NoLossIsNoop(t *testing.T) {
	c, err := New(3, 1, 8)
	require.NoError(t, err)

	data := [][]byte{
		pattern(1, 8),
		pattern(2, 8),
		pattern(3, 8),
	}
	blocks := []Block{
		{Row: 0, Payload: append([]byte(nil), data[0]...)},
		{Row: 1, Payload: append([]byte(nil), data[1]...)},
		{Row: 2, Payload: append([]byte(nil), data[2]...)},
	}
	// Deliberately no recovery block present: should never be consulted.
	require.NoError(t, c.Decode(blocks))
	for i := range data {
		assert.Equal(t, data[i], blocks[i].Payload)
	}
}

// S4: fewer than k total present blocks must fail with InsufficientBlocks.
func TestScenarioS4TooFewBlocks(t *testing.T) {
	c, err := New(4, 2, 8)
	require.NoError(t, err)

	data := [][]byte{
		pattern(1, 8), pattern(2, 8), pattern(3, 8), pattern(4, 8),
	}
	recovery := encodeAll(t, c, data)
	blocks := []Block{
		{Row: 0, Payload: data[0]},
		{Row: 1, Payload: nil},
		{Row: 2, Payload: nil},
		{Row: 3, Payload: nil},
		{Row: 4, Payload: recovery[0]},
		{Row: 5, Payload: recovery[1]},
	}
	err = c.Decode(blocks)
	assert.ErrorIs(t, err, ErrInsufficientBlocks)
}

// S5: exactly k present blocks (2 data + all 3 parity) with 3 missing data
// rows (== m) must succeed.
func TestScenarioS5ExactlyK(t *testing.T) {
	c, err := New(5, 3, 8)
	require.NoError(t, err)

	data := [][]byte{
		pattern(1, 8), pattern(2, 8), pattern(3, 8), pattern(4, 8), pattern(5, 8),
	}
	recovery := encodeAll(t, c, data)
	blocks := []Block{
		{Row: 0, Payload: data[0]},
		{Row: 1, Payload: data[1]},
		{Row: 2, Payload: nil},
		{Row: 3, Payload: nil},
		{Row: 4, Payload: nil},
		{Row: 5, Payload: recovery[0]},
		{Row: 6, Payload: recovery[1]},
		{Row: 7, Payload: recovery[2]},
	}
	require.NoError(t, c.Decode(blocks))
	for i, d := range data {
		assert.Equal(t, d, dataBlockByRow(blocks, i))
	}
}

// S6: k=1, m=1; the single Cauchy coefficient is 1, so parity equals data.
func TestScenarioS6SingleCoefficientIsOne(t *testing.T) {
	c, err := New(1, 1, 8)
	require.NoError(t, err)

	data := [][]byte{{0, 0, 0, 0, 0, 0, 0, 0}}
	recovery := encodeAll(t, c, data)
	assert.Equal(t, data[0], recovery[0])
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	_, err := New(0, 1, 8)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = New(1, 0, 8)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = New(200, 100, 8)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = New(1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = New(1, 1, 9)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestKPlusMBoundary(t *testing.T) {
	_, err := New(200, 56, 8)
	assert.NoError(t, err)

	_, err = New(200, 57, 8)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestDecodeUninitializedContext(t *testing.T) {
	var c *Coder
	err := c.Decode([]Block{{Row: 0, Payload: []byte{1}}})
	assert.ErrorIs(t, err, ErrUninitializedContext)
}

func TestEncodeNullData(t *testing.T) {
	c, err := New(2, 1, 8)
	require.NoError(t, err)
	err = c.Encode(nil, make([]byte, 8))
	assert.ErrorIs(t, err, ErrNullData)
	err = c.Encode([][]byte{pattern(0, 8), pattern(1, 8)}, nil)
	assert.ErrorIs(t, err, ErrNullData)
}

// Property: for every (k,m) pair and every subset of m losses, decoding
// from the survivors reproduces the original data exactly.
func TestRoundTripProperty(t *testing.T) {
	configs := []struct{ k, m int }{
		{1, 1}, {2, 3}, {5, 2}, {3, 3},
	}
	for _, cfg := range configs {
		c, err := New(cfg.k, cfg.m, 8)
		require.NoError(t, err)

		data := make([][]byte, cfg.k)
		for i := range data {
			data[i] = pattern(byte(i*7+1), 8)
		}
		recovery := encodeAll(t, c, data)

		n := cfg.k + cfg.m
		forEachSubset(n, cfg.m, func(lost []int) {
			lostSet := make(map[int]bool, len(lost))
			for _, l := range lost {
				lostSet[l] = true
			}

			blocks := make([]Block, n)
			for i := 0; i < cfg.k; i++ {
				if lostSet[i] {
					blocks[i] = Block{Row: i}
				} else {
					blocks[i] = Block{Row: i, Payload: append([]byte(nil), data[i]...)}
				}
			}
			for i := 0; i < cfg.m; i++ {
				row := cfg.k + i
				if lostSet[row] {
					blocks[row] = Block{Row: row}
				} else {
					blocks[row] = Block{Row: row, Payload: append([]byte(nil), recovery[i]...)}
				}
			}

			require.NoError(t, c.Decode(blocks))
			for i := 0; i < cfg.k; i++ {
				assert.Equal(t, data[i], dataBlockByRow(blocks, i))
			}
		})
	}
}

// forEachSubset calls fn with every size-m subset of [0,n) as a slice of
// indices.
func forEachSubset(n, m int, fn func(subset []int)) {
	if m > n {
		return
	}
	chosen := make([]int, 0, m)
	var rec func(start int)
	rec = func(start int) {
		if len(chosen) == m {
			fn(append([]int(nil), chosen...))
			return
		}
		for i := start; i < n; i++ {
			chosen = append(chosen, i)
			rec(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	rec(0)
}
