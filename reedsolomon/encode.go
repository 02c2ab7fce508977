package reedsolomon

import "github.com/mfeld/cauchyrs/internal/gf"

// Encode writes m parity blocks into recovery, computed from the k data
// blocks. data must have exactly c.DataShards() entries, each exactly
// c.BlockBytes() long; recovery must be a single contiguous buffer of
// c.ParityShards()*c.BlockBytes() bytes. recovery is zeroed before any
// parity is accumulated into it, then
//
//	recovery[i*blockBytes : (i+1)*blockBytes] = XOR_j coef(i,j) * data[j]
//
// where coef(i,j) is the Cauchy matrix entry for parity row i and data
// column j, skipping zero coefficients and using a bare XOR instead of a
// field multiply when coef(i,j) == 1.
func (c *Coder) Encode(data [][]byte, recovery []byte) error {
	if !c.initialized() {
		return ErrUninitializedContext
	}
	if data == nil || recovery == nil {
		return ErrNullData
	}
	if len(data) != c.k {
		return ErrInvalidParameters
	}
	for _, d := range data {
		if len(d) != c.blockBytes {
			return ErrInvalidParameters
		}
	}
	if len(recovery) != c.m*c.blockBytes {
		return ErrInvalidParameters
	}

	for i := range recovery {
		recovery[i] = 0
	}

	for i := 0; i < c.m; i++ {
		out := recovery[i*c.blockBytes : (i+1)*c.blockBytes]
		for j := 0; j < c.k; j++ {
			coef := c.cauchy[i][j]
			switch coef {
			case 0:
				continue
			case 1:
				xorInto(out, data[j])
			default:
				mulXorInto(c.field, out, data[j], coef)
			}
		}
	}
	return nil
}

// xorInto computes dst ^= src byte by byte.
func xorInto(dst, src []byte) {
	for p := range dst {
		dst[p] ^= src[p]
	}
}

// mulXorInto computes dst ^= coef*src byte by byte in GF(2^8).
func mulXorInto(f *gf.Field, dst, src []byte, coef byte) {
	for p := range dst {
		dst[p] ^= f.Mul(src[p], coef)
	}
}
