package msdata

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// SpectrumList is a read-only, index-addressable sequence of spectra.
type SpectrumList interface {
	// Size returns the number of spectra in the list.
	Size() int

	// Identity returns the lightweight identity of the spectrum at i
	// without materializing its arrays.
	Identity(i int) (SpectrumIdentity, error)

	// Spectrum returns the spectrum at i, including binary arrays.
	// Implementations may share the returned value between calls; callers
	// that mutate must Clone first.
	Spectrum(i int) (*Spectrum, error)
}

// MemoryList is a slice-backed SpectrumList used by generators and tests.
type MemoryList struct {
	Spectra []*Spectrum
}

// Append adds a spectrum, assigning its list index.
func (l *MemoryList) Append(s *Spectrum) {
	s.Index = len(l.Spectra)
	l.Spectra = append(l.Spectra, s)
}

// Size returns the number of spectra.
func (l *MemoryList) Size() int { return len(l.Spectra) }

// Identity returns the identity of the spectrum at i.
func (l *MemoryList) Identity(i int) (SpectrumIdentity, error) {
	if i < 0 || i >= len(l.Spectra) {
		return SpectrumIdentity{}, ErrIndexRange
	}
	return SpectrumIdentity{Index: i, ID: l.Spectra[i].ID}, nil
}

// Spectrum returns the spectrum at i.
func (l *MemoryList) Spectrum(i int) (*Spectrum, error) {
	if i < 0 || i >= len(l.Spectra) {
		return nil, ErrIndexRange
	}
	return l.Spectra[i], nil
}

// DefaultCacheSize bounds the CachingList when no capacity is given.
const DefaultCacheSize = 1000

// CachingList wraps a SpectrumList in a bounded LRU keyed by index.
// Identity calls pass through; Spectrum calls are cached, so repeated
// neighborhood assembly over the same originals avoids re-reading the
// source (which may be an on-disk raw file).
type CachingList struct {
	inner SpectrumList
	cache *lru.Cache[int, *Spectrum]
}

// NewCachingList wraps inner with an LRU of the given capacity.
// A non-positive capacity selects DefaultCacheSize.
func NewCachingList(inner SpectrumList, capacity int) (*CachingList, error) {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	cache, err := lru.New[int, *Spectrum](capacity)
	if err != nil {
		return nil, err
	}
	return &CachingList{inner: inner, cache: cache}, nil
}

// Size returns the size of the wrapped list.
func (l *CachingList) Size() int { return l.inner.Size() }

// Identity delegates to the wrapped list.
func (l *CachingList) Identity(i int) (SpectrumIdentity, error) {
	return l.inner.Identity(i)
}

// Spectrum returns the cached spectrum at i, reading through on miss.
func (l *CachingList) Spectrum(i int) (*Spectrum, error) {
	if s, ok := l.cache.Get(i); ok {
		return s, nil
	}
	s, err := l.inner.Spectrum(i)
	if err != nil {
		return nil, err
	}
	l.cache.Add(i, s)
	return s, nil
}
