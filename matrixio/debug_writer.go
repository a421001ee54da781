package matrixio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// blockIndex is one footer entry: originating spectrum id and the file
// offset of its triple.
type blockIndex struct {
	id     uint64
	offset int64
}

// DebugWriter appends (masks, signal, solution) triples to a container
// file, indexing them by originating spectrum id. Close finalizes the
// footer; a writer that is never closed leaves the footer pointer zeroed
// and the file unreadable by design.
type DebugWriter struct {
	f      *os.File
	w      *bufio.Writer
	offset int64
	index  []blockIndex
}

// NewDebugWriter truncates path and writes the footer-pointer placeholder.
func NewDebugWriter(path string) (*DebugWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	dw := &DebugWriter{f: f, w: bufio.NewWriter(f)}
	if err := binary.Write(dw.w, byteOrder, int64(0)); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	dw.offset = 8
	return dw, nil
}

// write frames one matrix and advances the running file offset.
func (dw *DebugWriter) write(m mat.Matrix) error {
	rows, cols := m.Dims()
	if err := WriteMatrix(dw.w, m); err != nil {
		return err
	}
	dw.offset += 16 + int64(rows)*int64(cols)*8
	return nil
}

// WriteBlock appends one triple and records its footer entry.
func (dw *DebugWriter) WriteBlock(id uint64, masks, signal, solution mat.Matrix) error {
	dw.index = append(dw.index, blockIndex{id: id, offset: dw.offset})
	for _, m := range []mat.Matrix{masks, signal, solution} {
		if err := dw.write(m); err != nil {
			return fmt.Errorf("%w: %v", ErrDebugFile, err)
		}
	}
	return nil
}

// NumBlocks returns the number of triples written so far.
func (dw *DebugWriter) NumBlocks() int { return len(dw.index) }

// Close writes the footer, patches the footer pointer at byte 0, and
// closes the file.
func (dw *DebugWriter) Close() error {
	footerOffset := dw.offset
	if err := binary.Write(dw.w, byteOrder, uint64(len(dw.index))); err != nil {
		return fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	for _, entry := range dw.index {
		if err := binary.Write(dw.w, byteOrder, entry.id); err != nil {
			return fmt.Errorf("%w: %v", ErrDebugFile, err)
		}
		if err := binary.Write(dw.w, byteOrder, entry.offset); err != nil {
			return fmt.Errorf("%w: %v", ErrDebugFile, err)
		}
	}
	if err := dw.w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	if _, err := dw.f.WriteAt(int64ToBytes(footerOffset), 0); err != nil {
		return fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	if err := dw.f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	return nil
}

// int64ToBytes frames a single int64 in the container byte order.
func int64ToBytes(v int64) []byte {
	var buf [8]byte
	byteOrder.PutUint64(buf[:], uint64(v))
	return buf[:]
}
