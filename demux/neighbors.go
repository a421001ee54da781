package demux

import (
	"math"
	"sort"

	"github.com/prismms/msdemux/msdata"
)

// FindNearbySpectra returns count MS2 indices as close to centerIndex as
// possible in list order, the center itself included, split roughly evenly
// before and after it. When one end of the list is hit, the remainder is
// pulled from the other side. A stride of s records every s-th MS2
// spectrum walked, which selects same-phase spectra across repeating
// cycles. The result is sorted ascending.
func FindNearbySpectra(sl msdata.SpectrumList, centerIndex, count, stride int) ([]int, error) {
	if centerIndex < 0 || centerIndex >= sl.Size() {
		return nil, msdata.ErrIndexRange
	}
	if stride < 1 {
		stride = 1
	}
	center, err := sl.Spectrum(centerIndex)
	if err != nil {
		return nil, err
	}
	if center.MSLevel != 2 {
		return nil, ErrCenterNotMS2
	}

	indices := []int{centerIndex}
	backwardsNeeded := int(math.Round(float64(count-1) / 2.0))
	afterNeeded := count - 1 - backwardsNeeded

	// pick steps the stride counter on MS2 spectra and reports when a pick lands.
	stepCount := 0
	pick := func(i int) (bool, error) {
		s, err := sl.Spectrum(i)
		if err != nil {
			return false, err
		}
		if s.MSLevel != 2 {
			return false, nil
		}
		stepCount++
		if stepCount < stride {
			return false, nil
		}
		stepCount = 0
		return true, nil
	}

	// Walk backwards from the center.
	loc := centerIndex
	for backwardsNeeded > 0 && loc != 0 {
		loc--
		ok, err := pick(loc)
		if err != nil {
			return nil, err
		}
		if ok {
			indices = append(indices, loc)
			backwardsNeeded--
		}
	}

	// Any shortfall moves to the forward walk.
	afterNeeded += backwardsNeeded
	loc = centerIndex + 1
	stepCount = 0
	for loc < sl.Size() && afterNeeded > 0 {
		ok, err := pick(loc)
		if err != nil {
			return nil, err
		}
		if ok {
			indices = append(indices, loc)
			afterNeeded--
		}
		loc++
	}

	// If the end of the list cut the forward walk short, resume backwards
	// from the earliest pick so far.
	if afterNeeded > 0 {
		loc = indices[0]
		for _, i := range indices {
			if i < loc {
				loc = i
			}
		}
	}
	for afterNeeded > 0 && loc != 0 {
		loc--
		ok, err := pick(loc)
		if err != nil {
			return nil, err
		}
		if ok {
			indices = append(indices, loc)
			afterNeeded--
		}
	}

	if len(indices) != count {
		return nil, ErrInsufficientNeighbors
	}
	sort.Ints(indices)
	return indices, nil
}
