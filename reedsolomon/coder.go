package reedsolomon

import (
	"github.com/sirupsen/logrus"

	"github.com/mfeld/cauchyrs/internal/gf"
	"github.com/mfeld/cauchyrs/internal/matrix"
)

// Coder holds everything needed to encode k data blocks into m recovery
// blocks, or decode any k of the resulting k+m blocks back into the
// original k, for one fixed (k, m, blockBytes) triple. A Coder is built
// once via New and is safe for concurrent use by multiple goroutines
// provided each call owns the Block payloads it passes in, the same
// concurrency contract the teacher's Code type documents for its GF(2^8)
// field.
type Coder struct {
	field      *gf.Field
	k, m       int
	blockBytes int
	cauchy     matrix.Byte
}

// New validates (k, m, blockBytes) against the invariants of the code and
// builds the m-by-k Cauchy matrix once. It fails with ErrInvalidParameters
// if k<=0, m<=0, k+m>256, blockBytes<=0, or blockBytes isn't a multiple of
// 8.
func New(k, m, blockBytes int) (*Coder, error) {
	if err := validateParameters(k, m, blockBytes); err != nil {
		return nil, err
	}

	f := gf.Default()
	c := &Coder{
		field:      f,
		k:          k,
		m:          m,
		blockBytes: blockBytes,
		cauchy:     matrix.Cauchy(f, k, m),
	}
	logrus.Infof("reedsolomon: built %d+%d Cauchy code with block size %d", k, m, blockBytes)
	return c, nil
}

func validateParameters(k, m, blockBytes int) error {
	if k <= 0 || m <= 0 {
		return ErrInvalidParameters
	}
	if k+m > 256 {
		return ErrInvalidParameters
	}
	if blockBytes <= 0 || blockBytes%8 != 0 {
		return ErrInvalidParameters
	}
	return nil
}

// DataShards returns k.
func (c *Coder) DataShards() int { return c.k }

// ParityShards returns m.
func (c *Coder) ParityShards() int { return c.m }

// BlockBytes returns the fixed payload size of every block this Coder
// produces and consumes.
func (c *Coder) BlockBytes() int { return c.blockBytes }

// initialized reports whether c was constructed through New.
func (c *Coder) initialized() bool {
	return c != nil && c.field != nil && c.cauchy != nil
}
