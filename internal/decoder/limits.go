package decoder

import "fmt"

// Declared counts in a tile are untrusted. Every count that sizes an allocation
// is checked against these caps first, so a corrupt or hostile tile is rejected
// instead of triggering a multi-gigabyte allocation. The caps are far above
// anything produced for real map data.
const (
	maxLayerCount      = 1 << 10 // layers per tile
	maxFeatureCount    = 1 << 21 // features per layer
	maxStreamValues    = 1 << 24 // values per integer stream
	maxStringDataBytes = 1 << 28 // bytes per string data section
	maxNameBytes       = 1 << 16 // layer and property name length
	maxPropertyColumns = 1 << 12 // property columns per layer
	maxDictNesting     = 4       // dictionary streams inside dictionary streams
)

// checkCount rejects a declared count above limit before it sizes an allocation.
func checkCount(stream string, n, limit uint64) error {
	if n > limit {
		return &ErrCorruptStream{
			Stream: stream,
			Reason: fmt.Sprintf("declared count %d exceeds decoder limit %d", n, limit),
		}
	}
	return nil
}
