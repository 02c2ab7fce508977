package matrix

import (
	"errors"

	"github.com/mfeld/cauchyrs/internal/gf"
)

// ErrSingular is returned by Invert when the matrix has no inverse in
// GF(2^8), i.e. Gauss-Jordan elimination could not find a non-zero pivot
// for some column.
var ErrSingular = errors.New("matrix: singular, no inverse exists")

// Invert computes the inverse of the n-by-n matrix a in GF(2^8) by
// Gauss-Jordan elimination, the same algorithm the teacher repo's
// GaloisField.mtx_inv runs: an identity matrix is carried alongside a and
// is driven through the same row operations that reduce a to the
// identity, leaving the inverse in its place. a is not modified; its rows
// are copied before elimination begins.
func Invert(f *gf.Field, a Byte) (Byte, error) {
	n := len(a)
	work := make(Byte, n)
	inv := make(Byte, n)
	for i := 0; i < n; i++ {
		work[i] = append([]byte(nil), a[i]...)
		inv[i] = make([]byte, n)
		inv[i][i] = 1
	}

	for i := 0; i < n; i++ {
		pivot := -1
		for p := i; p < n; p++ {
			if work[p][i] != 0 {
				pivot = p
				break
			}
		}
		if pivot < 0 {
			return nil, ErrSingular
		}
		if pivot != i {
			work[i], work[pivot] = work[pivot], work[i]
			inv[i], inv[pivot] = inv[pivot], inv[i]
		}

		if work[i][i] != 1 {
			scale := f.Inv(work[i][i])
			scaleRow(f, work[i], scale)
			scaleRow(f, inv[i], scale)
		}

		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			factor := work[j][i]
			if factor == 0 {
				continue
			}
			eliminateRow(f, work[j], work[i], factor)
			eliminateRow(f, inv[j], inv[i], factor)
		}
	}

	return inv, nil
}

// scaleRow multiplies every entry of row by s in place.
func scaleRow(f *gf.Field, row []byte, s byte) {
	for i := range row {
		row[i] = f.Mul(row[i], s)
	}
}

// eliminateRow computes dst ^= f * src, the field equivalent of
// subtracting factor*src from dst.
func eliminateRow(f *gf.Field, dst, src []byte, factor byte) {
	for i := range dst {
		dst[i] = f.Add(dst[i], f.Mul(src[i], factor))
	}
}
