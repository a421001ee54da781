package demux_test

import (
	"fmt"

	"github.com/prismms/msdemux/demux"
	"github.com/prismms/msdemux/simdata"
)

// ExampleNewSpectrumList wraps a simulated single-overlap acquisition and
// shows the expanded size and a rewritten identity.
func ExampleNewSpectrumList() {
	p := simdata.DefaultParams()
	p.NumPrecursorsPerSpectrum = 1
	p.NumOverlaps = 1
	p.NumCycles = 5
	p.NumMs2ScansPerCycle = 25
	list, err := simdata.BuildList(p)
	if err != nil {
		panic(err)
	}

	params := demux.DefaultParams()
	params.Optimization = demux.OptimizationOverlapOnly

	sl, err := demux.NewSpectrumList(list, params, nil)
	if err != nil {
		panic(err)
	}

	fmt.Println(list.Size(), "->", sl.Size())
	ident, _ := sl.Identity(1)
	fmt.Println(ident.ID)
	// Output:
	// 260 -> 510
	// controllerType=0 controllerNumber=1 originalScan=1 demux=0 scan=2
}
