package msdata

import (
	"strconv"
	"strings"
)

// Native id strings are space-separated key=value tokens, e.g.
// "controllerType=0 controllerNumber=1 scan=42". Tokens without exactly
// one '=' are preserved verbatim by the rewriting helpers.

// IDToken returns the value of the named key within a native id string.
func IDToken(id, key string) (string, bool) {
	for _, token := range strings.Fields(id) {
		k, v, ok := strings.Cut(token, "=")
		if !ok || strings.Contains(v, "=") {
			continue
		}
		if k == key {
			return v, true
		}
	}
	return "", false
}

// IDTokenInt returns the named key's value parsed as an integer.
func IDTokenInt(id, key string) (int, bool) {
	v, ok := IDToken(id, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ScanNumber returns the scan=<int> token of a native id.
func ScanNumber(id string) (int, bool) {
	return IDTokenInt(id, "scan")
}

// DemuxIndex returns the demux=<int> token of a rewritten native id.
func DemuxIndex(id string) (int, bool) {
	return IDTokenInt(id, "demux")
}

// OriginalScanNumber returns the originalScan=<int> token of a rewritten
// native id.
func OriginalScanNumber(id string) (int, bool) {
	return IDTokenInt(id, "originalScan")
}

// InjectScanID rewrites a native id for a demultiplexed spectrum: the
// scan=N token is replaced by the triple
// "originalScan=N demux=<demuxIndex> scan=<scanNumber>", all other tokens
// pass through in order. scanNumber is the 1-based position of the new
// spectrum in the expanded list.
func InjectScanID(id string, scanNumber, demuxIndex int) string {
	var b strings.Builder
	for _, token := range strings.Fields(id) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		k, v, ok := strings.Cut(token, "=")
		if ok && k == "scan" && !strings.Contains(v, "=") {
			b.WriteString("originalScan=")
			b.WriteString(v)
			b.WriteString(" demux=")
			b.WriteString(strconv.Itoa(demuxIndex))
			b.WriteString(" scan=")
			b.WriteString(strconv.Itoa(scanNumber))
			continue
		}
		b.WriteString(token)
	}
	return b.String()
}
