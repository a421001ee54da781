package matrixio_test

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/prismms/msdemux/matrixio"
)

func randomMatrix(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64() * 100
	}
	return mat.NewDense(rows, cols, data)
}

// TestWriteReadMatrix_RoundTrip verifies the matrix frame round-trips
// element-wise.
func TestWriteReadMatrix_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := randomMatrix(rng, 7, 13)

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteMatrix(&buf, m))
	assert.Equal(t, 16+7*13*8, buf.Len(), "frame is dims plus row-major doubles")

	got, err := matrixio.ReadMatrix(&buf)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, got))
}

// TestWriteMatrix_TransposedSourceIsRowMajor verifies a column-major view
// (a transpose) is laid out row-major on disk.
func TestWriteMatrix_TransposedSourceIsRowMajor(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	var direct, viaTranspose bytes.Buffer
	require.NoError(t, matrixio.WriteMatrix(&direct, m.T()))

	explicit := mat.NewDense(3, 2, []float64{1, 4, 2, 5, 3, 6})
	require.NoError(t, matrixio.WriteMatrix(&viaTranspose, explicit))

	assert.Equal(t, explicit.RawMatrix().Data, mat.DenseCopyOf(m.T()).RawMatrix().Data)
	assert.Equal(t, direct.Bytes(), viaTranspose.Bytes())
}

// TestDebugFile_RoundTrip writes three (id, A, B, A×B) triples and reads
// every one back element-wise equal.
func TestDebugFile_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	path := filepath.Join(t.TempDir(), "demux-debug.bin")

	type triple struct {
		id      uint64
		a, b, c *mat.Dense
	}
	var triples []triple
	for k := 0; k < 3; k++ {
		a := randomMatrix(rng, 5, 4)
		b := randomMatrix(rng, 4, 6)
		var c mat.Dense
		c.Mul(a, b)
		triples = append(triples, triple{id: uint64(100 + k), a: a, b: b, c: &c})
	}

	w, err := matrixio.NewDebugWriter(path)
	require.NoError(t, err)
	for _, tr := range triples {
		require.NoError(t, w.WriteBlock(tr.id, tr.a, tr.b, tr.c))
	}
	assert.Equal(t, 3, w.NumBlocks())
	require.NoError(t, w.Close())

	r, err := matrixio.OpenDebugReader(path)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 3, r.NumBlocks())
	for k, tr := range triples {
		id, a, b, c, err := r.ReadBlock(k)
		require.NoError(t, err, "block %d", k)
		assert.Equal(t, tr.id, id)
		assert.True(t, mat.EqualApprox(tr.a, a, 1e-15), "masks of block %d", k)
		assert.True(t, mat.EqualApprox(tr.b, b, 1e-15), "signal of block %d", k)
		assert.True(t, mat.EqualApprox(tr.c, c, 1e-15), "solution of block %d", k)
	}
}

// TestDebugFile_RandomAccessOrder verifies blocks can be read out of
// order via the footer index.
func TestDebugFile_RandomAccessOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	path := filepath.Join(t.TempDir(), "demux-debug.bin")

	w, err := matrixio.NewDebugWriter(path)
	require.NoError(t, err)
	sizes := [][2]int{{2, 2}, {3, 5}, {1, 4}, {6, 2}}
	var want []*mat.Dense
	for k, sz := range sizes {
		m := randomMatrix(rng, sz[0], sz[1])
		want = append(want, m)
		require.NoError(t, w.WriteBlock(uint64(k), m, m, m))
	}
	require.NoError(t, w.Close())

	r, err := matrixio.OpenDebugReader(path)
	require.NoError(t, err)
	defer r.Close()

	for _, k := range []int{3, 0, 2, 1, 2} {
		id, a, _, _, err := r.ReadBlock(k)
		require.NoError(t, err)
		assert.Equal(t, uint64(k), id)
		assert.True(t, mat.Equal(want[k], a), "block %d", k)
	}

	_, _, _, _, err = r.ReadBlock(4)
	assert.ErrorIs(t, err, matrixio.ErrBadBlock)
	_, _, _, _, err = r.ReadBlock(-1)
	assert.ErrorIs(t, err, matrixio.ErrBadBlock)
}

// TestOpenDebugReader_Missing verifies open failures wrap ErrDebugFile.
func TestOpenDebugReader_Missing(t *testing.T) {
	_, err := matrixio.OpenDebugReader(filepath.Join(t.TempDir(), "absent.bin"))
	assert.ErrorIs(t, err, matrixio.ErrDebugFile)
}
