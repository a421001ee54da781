package matrixio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
)

// DebugReader provides random access to the triples of a debug container.
type DebugReader struct {
	f     *os.File
	index []blockIndex
}

// OpenDebugReader reads the footer of the container at path.
func OpenDebugReader(path string) (*DebugReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	dr := &DebugReader{f: f}
	if err := dr.readFooter(); err != nil {
		f.Close()
		return nil, err
	}
	return dr, nil
}

// readFooter follows the pointer at byte 0 and loads the (id, offset)
// pairs into memory.
func (dr *DebugReader) readFooter() error {
	var footerOffset int64
	if err := binary.Read(dr.f, byteOrder, &footerOffset); err != nil {
		return fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	if footerOffset < 8 {
		return ErrBadHeader
	}
	if _, err := dr.f.Seek(footerOffset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	var count uint64
	if err := binary.Read(dr.f, byteOrder, &count); err != nil {
		return fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	dr.index = make([]blockIndex, count)
	for i := range dr.index {
		if err := binary.Read(dr.f, byteOrder, &dr.index[i].id); err != nil {
			return fmt.Errorf("%w: %v", ErrDebugFile, err)
		}
		if err := binary.Read(dr.f, byteOrder, &dr.index[i].offset); err != nil {
			return fmt.Errorf("%w: %v", ErrDebugFile, err)
		}
	}
	return nil
}

// NumBlocks returns the number of triples in the container.
func (dr *DebugReader) NumBlocks() int { return len(dr.index) }

// ReadBlock seeks to triple i and reads it back.
func (dr *DebugReader) ReadBlock(i int) (id uint64, masks, signal, solution *mat.Dense, err error) {
	if i < 0 || i >= len(dr.index) {
		return 0, nil, nil, nil, ErrBadBlock
	}
	entry := dr.index[i]
	if _, err := dr.f.Seek(entry.offset, io.SeekStart); err != nil {
		return 0, nil, nil, nil, fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	out := make([]*mat.Dense, 3)
	for j := range out {
		m, err := ReadMatrix(dr.f)
		if err != nil {
			return 0, nil, nil, nil, fmt.Errorf("%w: %v", ErrDebugFile, err)
		}
		out[j] = m
	}
	return entry.id, out[0], out[1], out[2], nil
}

// Close releases the underlying file.
func (dr *DebugReader) Close() error {
	if err := dr.f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDebugFile, err)
	}
	return nil
}
