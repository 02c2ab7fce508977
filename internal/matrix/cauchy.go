// Package matrix builds Cauchy matrices over GF(2^8) and inverts square
// byte matrices by Gauss-Jordan elimination in that field. It has no state
// of its own beyond the *gf.Field it is handed; every function here is
// pure with respect to its caller-owned inputs.
package matrix

import "github.com/mfeld/cauchyrs/internal/gf"

// Byte is a row-major n-column matrix of field elements.
type Byte [][]byte

// Cauchy builds the m-by-k Cauchy matrix M[i][j] = inv(add(k+i, j)) used
// to generate m parity rows from k data rows. Rows [0,k) and [k,k+m) are
// drawn from disjoint integer sets, so add(k+i, j) is never zero and every
// entry has a defined inverse; any square submatrix of a Cauchy matrix is
// non-singular, which is what makes the resulting code MDS.
func Cauchy(f *gf.Field, k, m int) Byte {
	rows := make(Byte, m)
	for i := 0; i < m; i++ {
		row := make([]byte, k)
		for j := 0; j < k; j++ {
			row[j] = f.Inv(f.Add(byte(k+i), byte(j)))
		}
		rows[i] = row
	}
	return rows
}
