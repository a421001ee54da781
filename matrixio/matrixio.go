package matrixio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for the binary matrix container.
var (
	// ErrDebugFile wraps any I/O failure on the debug container.
	ErrDebugFile = errors.New("matrixio: debug file I/O failed")

	// ErrBadBlock indicates a block index outside the container's footer.
	ErrBadBlock = errors.New("matrixio: block index out of range")

	// ErrBadHeader indicates an unreadable or inconsistent footer pointer.
	ErrBadHeader = errors.New("matrixio: malformed container header")
)

// byteOrder is the on-disk endianness of all framed values.
var byteOrder = binary.LittleEndian

// WriteMatrix frames m as int64 dimensions followed by row-major doubles.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	rows, cols := m.Dims()
	if err := binary.Write(w, byteOrder, int64(rows)); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, int64(cols)); err != nil {
		return err
	}
	// Walk in row-major order regardless of the source layout.
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = m.At(i, j)
		}
		if err := binary.Write(w, byteOrder, row); err != nil {
			return err
		}
	}
	return nil
}

// ReadMatrix reads one framed matrix.
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	var rows, cols int64
	if err := binary.Read(r, byteOrder, &rows); err != nil {
		return nil, err
	}
	if err := binary.Read(r, byteOrder, &cols); err != nil {
		return nil, err
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrBadHeader, rows, cols)
	}
	data := make([]float64, rows*cols)
	if err := binary.Read(r, byteOrder, data); err != nil {
		return nil, err
	}
	return mat.NewDense(int(rows), int(cols), data), nil
}
