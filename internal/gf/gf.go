// Package gf implements byte-level arithmetic over the Galois field GF(2^8).
//
// A Field is built once and is immutable afterwards: all non-zero elements
// are reached by table lookup rather than by repeated polynomial
// multiplication, so add/mul/div/inv run in constant time regardless of the
// operands. The field tables are derived deterministically from a fixed
// irreducible polynomial, the same way the teacher repo's GaloisField type
// derives its arithmetic from a chosen generating polynomial, except here
// the multiplication itself is precomputed rather than recomputed on every
// call.
package gf

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// genPoly lists the candidate high bytes of an irreducible degree-8
// polynomial over GF(2); polynomial = (genPoly[idx] << 1) | 1.
var genPoly = [16]uint16{
	0x8e, 0x95, 0x96, 0xa6, 0xaf, 0xb1, 0xb2, 0xb4,
	0xb8, 0xc3, 0xc6, 0xd4, 0xe1, 0xe7, 0xf3, 0xfa,
}

// DefaultPolyIndex selects genPoly[3] = 0xa6, giving polynomial 0x14D.
const DefaultPolyIndex = 3

// logUndefined is the sentinel stored at log[0]; zero has no logarithm.
const logUndefined = 512

// Field is an immutable GF(2^8) arithmetic context: a fixed irreducible
// polynomial plus the exp/log/mul/div/inv tables derived from it.
type Field struct {
	polynomial uint16
	expTable   [1021]byte
	logTable   [256]uint16
	mulTable   [256][256]byte
	divTable   [256][256]byte
	invTable   [256]byte
}

var (
	defaultField     *Field
	defaultFieldOnce sync.Once
)

// Default returns the process-wide GF(2^8) context built from
// DefaultPolyIndex, constructing it on first use.
func Default() *Field {
	defaultFieldOnce.Do(func() {
		defaultField = New(DefaultPolyIndex)
	})
	return defaultField
}

// New builds a Field from genPoly[idx]. Construction is deterministic and
// side-effect free besides logging; the result may be built any number of
// times and always yields identical tables.
func New(idx int) *Field {
	f := &Field{polynomial: (genPoly[idx] << 1) | 1}
	f.initExpLog()
	f.initMulDiv()
	f.initInv()
	logrus.Infof("gf: built GF(2^8) context with polynomial %#x (genPoly index %d)", f.polynomial, idx)
	return f
}

// initExpLog fills the exp and log tables for the field's polynomial.
func (f *Field) initExpLog() {
	f.logTable[0] = logUndefined
	f.expTable[0] = 1

	for j := 1; j < 255; j++ {
		next := uint16(f.expTable[j-1]) << 1
		if next >= 256 {
			next ^= f.polynomial
		}
		f.expTable[j] = byte(next)
		f.logTable[next] = uint16(j)
	}

	f.expTable[255] = f.expTable[0]
	f.logTable[f.expTable[255]] = 255

	for j := 256; j < 510; j++ {
		f.expTable[j] = f.expTable[j%255]
	}
	f.expTable[510] = 1
	// f.expTable[511:1021] stays zero-valued by construction.
}

// initMulDiv fills the 256x256 multiply and divide tables, row-indexed by
// the second (right-hand) operand for locality when it is a constant
// multiplier/divisor across a whole block.
func (f *Field) initMulDiv() {
	for y := 1; y < 256; y++ {
		logY := int(f.logTable[y])
		logYn := 255 - logY
		for x := 1; x < 256; x++ {
			logX := int(f.logTable[x])
			f.mulTable[y][x] = f.expTable[(logX+logY)%255]
			f.divTable[y][x] = f.expTable[(logX+logYn)%255]
		}
	}
}

// initInv fills the inverse table from the divide table; inv[0] is
// unspecified by the field and must never be consumed by a caller.
func (f *Field) initInv() {
	for x := 0; x < 256; x++ {
		f.invTable[x] = f.divTable[x][1]
	}
}

// Add returns x+y, which in characteristic 2 is the same as subtraction.
func (f *Field) Add(x, y byte) byte {
	return x ^ y
}

// Mul returns x*y.
func (f *Field) Mul(x, y byte) byte {
	return f.mulTable[y][x]
}

// Div returns x/y. The caller must ensure y != 0; div(x, 0) silently
// returns 0 rather than signalling an error.
func (f *Field) Div(x, y byte) byte {
	return f.divTable[y][x]
}

// Inv returns 1/x. The caller must ensure x != 0.
func (f *Field) Inv(x byte) byte {
	return f.invTable[x]
}
