package msdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prismms/msdemux/msdata"
)

// TestIDToken_Lookup verifies key=value token extraction.
func TestIDToken_Lookup(t *testing.T) {
	id := "controllerType=0 controllerNumber=1 scan=42"

	v, ok := msdata.IDToken(id, "scan")
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	v, ok = msdata.IDToken(id, "controllerNumber")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = msdata.IDToken(id, "missing")
	assert.False(t, ok)
}

// TestIDToken_MalformedTokensIgnored verifies tokens without exactly one
// '=' are skipped during lookup.
func TestIDToken_MalformedTokensIgnored(t *testing.T) {
	id := "plaintoken a==b scan=7"
	v, ok := msdata.IDToken(id, "scan")
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = msdata.IDToken(id, "a")
	assert.False(t, ok, "a==b is not a well-formed token")
}

// TestScanNumber verifies integer parsing of the scan token.
func TestScanNumber(t *testing.T) {
	n, ok := msdata.ScanNumber("scan=13")
	assert.True(t, ok)
	assert.Equal(t, 13, n)

	_, ok = msdata.ScanNumber("scan=x")
	assert.False(t, ok)

	_, ok = msdata.ScanNumber("index=13")
	assert.False(t, ok)
}

// TestInjectScanID verifies the scan token is replaced by the
// originalScan/demux/scan triple while other tokens pass through.
func TestInjectScanID(t *testing.T) {
	id := "controllerType=0 scan=42 extra=z"
	got := msdata.InjectScanID(id, 85, 1)
	assert.Equal(t, "controllerType=0 originalScan=42 demux=1 scan=85 extra=z", got)

	n, ok := msdata.ScanNumber(got)
	assert.True(t, ok)
	assert.Equal(t, 85, n)

	orig, ok := msdata.OriginalScanNumber(got)
	assert.True(t, ok)
	assert.Equal(t, 42, orig)

	d, ok := msdata.DemuxIndex(got)
	assert.True(t, ok)
	assert.Equal(t, 1, d)
}

// TestInjectScanID_NoScanToken verifies an id without a scan token is
// returned with tokens intact.
func TestInjectScanID_NoScanToken(t *testing.T) {
	id := "merged=0 frame=3"
	assert.Equal(t, id, msdata.InjectScanID(id, 1, 0))
}
