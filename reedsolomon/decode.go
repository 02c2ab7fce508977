package reedsolomon

import "github.com/mfeld/cauchyrs/internal/matrix"

// Decode reconstructs any missing data blocks (rows [0,k)) in place, using
// whichever data and recovery blocks are present. blocks must have length
// at least k; a Block is "missing" when its Payload is nil. Reconstructed
// blocks are written into the first nil-payload slots of blocks — callers
// must look up results by Row, not by position, per the design notes.
//
// If no data block is missing, Decode returns immediately without reading
// any recovery block or mutating blocks (idempotence).
func (c *Coder) Decode(blocks []Block) error {
	if !c.initialized() {
		return ErrUninitializedContext
	}
	if blocks == nil {
		return ErrNullData
	}
	if c.k <= 0 || len(blocks) < c.k {
		return ErrInvalidParameters
	}

	byRow := make(map[int]int, len(blocks)) // row -> index into blocks, present only
	for i, b := range blocks {
		if b.Present() {
			byRow[b.Row] = i
		}
	}

	missingIndices := missingDataRows(c.k, byRow)
	if len(missingIndices) == 0 {
		return nil
	}

	recoveryRows, err := collectRecoveryRows(c.k, c.m, len(missingIndices), blocks)
	if err != nil {
		return err
	}

	sub := c.buildSubmatrix(recoveryRows, missingIndices)
	subInv, err := c.invertSubmatrix(sub)
	if err != nil {
		return err
	}

	for u, dataRow := range missingIndices {
		acc, err := c.reconstructColumn(u, recoveryRows, subInv, byRow, blocks)
		if err != nil {
			return err
		}
		if err := installBlock(blocks, Block{Row: dataRow, Payload: acc}); err != nil {
			return err
		}
	}
	return nil
}

// missingDataRows returns, in ascending order, every data row in [0,k)
// that has no present block.
func missingDataRows(k int, byRow map[int]int) []int {
	missing := make([]int, 0, k)
	for i := 0; i < k; i++ {
		if _, ok := byRow[i]; !ok {
			missing = append(missing, i)
		}
	}
	return missing
}

// collectRecoveryRows scans blocks in order and returns up to
// missingCount distinct parity-row indices (0-based within [0,m)) whose
// payload is present, failing with ErrInsufficientBlocks if fewer exist.
func collectRecoveryRows(k, m, missingCount int, blocks []Block) ([]int, error) {
	seen := make(map[int]bool, missingCount)
	rows := make([]int, 0, missingCount)
	for _, b := range blocks {
		if len(rows) == missingCount {
			break
		}
		if !b.Present() || b.Row < k || b.Row >= k+m {
			continue
		}
		r := b.Row - k
		if seen[r] {
			continue
		}
		seen[r] = true
		rows = append(rows, r)
	}
	if len(rows) < missingCount {
		return nil, ErrInsufficientBlocks
	}
	return rows, nil
}

// buildSubmatrix forms the square matrix S[t][u] = M[recoveryRows[t]][missingIndices[u]].
func (c *Coder) buildSubmatrix(recoveryRows, missingIndices []int) matrix.Byte {
	n := len(recoveryRows)
	s := make(matrix.Byte, n)
	for t, r := range recoveryRows {
		row := make([]byte, n)
		for u, col := range missingIndices {
			row[u] = c.cauchy[r][col]
		}
		s[t] = row
	}
	return s
}

func (c *Coder) invertSubmatrix(sub matrix.Byte) (matrix.Byte, error) {
	inv, err := matrix.Invert(c.field, sub)
	if err != nil {
		return nil, ErrMatrixOperation
	}
	return inv, nil
}

// reconstructColumn computes the reconstructed payload for the u-th
// missing column, following §4.5 step 6: each recovery block has the
// contribution of every other present data block subtracted out, then
// the results are combined through the inverted submatrix.
func (c *Coder) reconstructColumn(u int, recoveryRows []int, subInv matrix.Byte, byRow map[int]int, blocks []Block) ([]byte, error) {
	acc := make([]byte, c.blockBytes)
	scratch := make([]byte, c.blockBytes)

	for t, r := range recoveryRows {
		idx, ok := byRow[c.k+r]
		if !ok {
			return nil, ErrBlockBuffer
		}
		copy(scratch, blocks[idx].Payload)

		for l := 0; l < c.k; l++ {
			dataIdx, ok := byRow[l]
			if !ok {
				continue // l is itself missing; only present columns are subtracted
			}
			coef := c.cauchy[r][l]
			switch coef {
			case 0:
				continue
			case 1:
				xorInto(scratch, blocks[dataIdx].Payload)
			default:
				mulXorInto(c.field, scratch, blocks[dataIdx].Payload, coef)
			}
		}

		coef := subInv[u][t]
		switch coef {
		case 0:
			continue
		case 1:
			xorInto(acc, scratch)
		default:
			mulXorInto(c.field, acc, scratch, coef)
		}
	}

	return acc, nil
}

// installBlock writes b into the first slot of blocks whose payload is
// currently nil, failing with ErrBlockBuffer if none exists.
func installBlock(blocks []Block, b Block) error {
	for i := range blocks {
		if !blocks[i].Present() {
			blocks[i] = b
			return nil
		}
	}
	return ErrBlockBuffer
}
