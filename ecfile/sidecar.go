package ecfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mfeld/cauchyrs/reedsolomon"
)

// info is the decoded form of a <basename>.info sidecar: ASCII,
// comma-separated "originalSize,k,m,blockSize".
type info struct {
	originalSize int
	k, m         int
	blockSize    int
}

func infoPath(basename string) string          { return basename + ".info" }
func dataPath(basename string, i int) string   { return fmt.Sprintf("%s.d%d", basename, i) }
func parityPath(basename string, i int) string { return fmt.Sprintf("%s.r%d", basename, i) }
func reconstructedPath(basename string) string { return basename + ".reconstructed" }

func writeInfo(basename string, in info) error {
	line := fmt.Sprintf("%d,%d,%d,%d", in.originalSize, in.k, in.m, in.blockSize)
	if err := os.WriteFile(infoPath(basename), []byte(line), 0o644); err != nil {
		return pkgerrors.Wrapf(err, "ecfile: write %s", infoPath(basename))
	}
	return nil
}

func readInfo(basename string) (info, error) {
	raw, err := os.ReadFile(infoPath(basename))
	if err != nil {
		return info{}, pkgerrors.Wrapf(err, "ecfile: read %s", infoPath(basename))
	}
	fields := strings.Split(strings.TrimSpace(string(raw)), ",")
	if len(fields) != 4 {
		return info{}, pkgerrors.Errorf("ecfile: malformed sidecar %s: want 4 comma-separated fields, got %d", infoPath(basename), len(fields))
	}
	values := make([]int, 4)
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return info{}, pkgerrors.Wrapf(err, "ecfile: malformed sidecar %s field %d", infoPath(basename), i)
		}
		values[i] = n
	}
	return info{originalSize: values[0], k: values[1], m: values[2], blockSize: values[3]}, nil
}

// blockSizeFor picks the smallest multiple of 8 that fits dataLen evenly
// split across k shards, with a floor of 8 so an empty or tiny input still
// yields a valid (non-zero, 8-aligned) block size.
func blockSizeFor(dataLen, k int) int {
	if dataLen == 0 {
		return 8
	}
	perShard := (dataLen + k - 1) / k
	if perShard%8 != 0 {
		perShard += 8 - perShard%8
	}
	if perShard == 0 {
		perShard = 8
	}
	return perShard
}

// Split reads the file at path and writes it out as a sidecar info file
// plus k data-block files and m recovery-block files alongside it,
// basename-keyed on path, per the collaborator contract of §6.
func Split(path string, k, m int) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "ecfile: read %s", path)
	}

	blockSize := blockSizeFor(len(raw), k)
	padded := make([]byte, k*blockSize)
	copy(padded, raw)

	coder, err := reedsolomon.New(k, m, blockSize)
	if err != nil {
		return err
	}

	data := make([][]byte, k)
	for i := 0; i < k; i++ {
		data[i] = padded[i*blockSize : (i+1)*blockSize]
	}
	recovery := make([]byte, m*blockSize)
	if err := coder.Encode(data, recovery); err != nil {
		return err
	}

	if err := writeInfo(path, info{originalSize: len(raw), k: k, m: m, blockSize: blockSize}); err != nil {
		return err
	}

	type writeJob struct {
		path string
		data []byte
	}
	jobs := make([]writeJob, 0, k+m)
	for i := 0; i < k; i++ {
		jobs = append(jobs, writeJob{dataPath(path, i), data[i]})
	}
	for i := 0; i < m; i++ {
		jobs = append(jobs, writeJob{parityPath(path, i), recovery[i*blockSize : (i+1)*blockSize]})
	}

	errCh := make(chan error, len(jobs))
	for _, j := range jobs {
		go func(j writeJob) {
			errCh <- os.WriteFile(j.path, j.data, 0o644)
		}(j)
	}
	for range jobs {
		if err := <-errCh; err != nil {
			return pkgerrors.Wrap(err, "ecfile: write block")
		}
	}

	blocksEncoded.Add(float64(len(jobs)))
	logrus.Infof("ecfile: split %s into %d data + %d recovery blocks of %d bytes", path, k, m, blockSize)
	return nil
}

// Reconstruct reads whichever <basename>.d<i>/<basename>.r<i> files are
// present, decodes any missing data blocks, and writes the original
// contents (truncated to the recorded original size) to
// <basename>.reconstructed.
func Reconstruct(basename string) error {
	start := time.Now()
	defer func() { reconstructDuration.Observe(time.Since(start).Seconds()) }()

	in, err := readInfo(basename)
	if err != nil {
		return err
	}

	coder, err := reedsolomon.New(in.k, in.m, in.blockSize)
	if err != nil {
		return err
	}

	type readResult struct {
		row     int
		payload []byte
		ok      bool
	}
	total := in.k + in.m
	results := make(chan readResult, total)
	for i := 0; i < in.k; i++ {
		go func(i int) {
			payload, ok := readIfExists(dataPath(basename, i))
			results <- readResult{row: i, payload: payload, ok: ok}
		}(i)
	}
	for i := 0; i < in.m; i++ {
		go func(i int) {
			payload, ok := readIfExists(parityPath(basename, i))
			results <- readResult{row: in.k + i, payload: payload, ok: ok}
		}(i)
	}

	blocks := make([]reedsolomon.Block, total)
	for i := 0; i < total; i++ {
		r := <-results
		blocks[r.row] = reedsolomon.Block{Row: r.row}
		if r.ok {
			blocks[r.row].Payload = r.payload
		}
	}

	reconstructedBefore := missingDataCount(blocks, in.k)
	if err := coder.Decode(blocks); err != nil {
		logrus.Errorf("ecfile: reconstruct %s: %v", basename, err)
		return err
	}
	blocksReconstructed.Add(float64(reconstructedBefore))

	out := make([]byte, 0, in.k*in.blockSize)
	for i := 0; i < in.k; i++ {
		out = append(out, blockByRow(blocks, i)...)
	}
	if len(out) > in.originalSize {
		out = out[:in.originalSize]
	}

	if err := os.WriteFile(reconstructedPath(basename), out, 0o644); err != nil {
		return pkgerrors.Wrapf(err, "ecfile: write %s", reconstructedPath(basename))
	}
	logrus.Infof("ecfile: reconstructed %s (%d bytes, %d data blocks recovered)", basename, in.originalSize, reconstructedBefore)
	return nil
}

func readIfExists(path string) ([]byte, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return raw, true
}

func missingDataCount(blocks []reedsolomon.Block, k int) int {
	n := 0
	for i := 0; i < k; i++ {
		if !blocks[i].Present() {
			n++
		}
	}
	return n
}

func blockByRow(blocks []reedsolomon.Block, row int) []byte {
	for _, b := range blocks {
		if b.Row == row {
			return b.Payload
		}
	}
	return nil
}
