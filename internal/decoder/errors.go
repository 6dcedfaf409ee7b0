package decoder

import (
	"fmt"
)

// ErrOutOfBounds indicates a read past the end of the tile buffer
type ErrOutOfBounds struct {
	Offset int // cursor position when the read was attempted
	Need   int // bytes the read required
	Have   int // bytes remaining
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("read past end of buffer: offset=%d need=%d have=%d",
		e.Offset, e.Need, e.Have)
}

// ErrCorruptStream indicates declared stream metadata inconsistent with content
type ErrCorruptStream struct {
	Stream string // stream being decoded, e.g. "roads.height"
	Reason string
}

func (e *ErrCorruptStream) Error() string {
	if e.Stream == "" {
		return fmt.Sprintf("corrupt stream: %s", e.Reason)
	}
	return fmt.Sprintf("corrupt stream %q: %s", e.Stream, e.Reason)
}

// ErrUnsupportedEncoding indicates a structurally valid but unimplemented encoding tag
type ErrUnsupportedEncoding struct {
	Stream   string
	Encoding uint8
}

func (e *ErrUnsupportedEncoding) Error() string {
	return fmt.Sprintf("stream %q declares unsupported encoding %d", e.Stream, e.Encoding)
}

// ErrCorruptGeometry indicates topology counts exceeding the remaining geometry streams
type ErrCorruptGeometry struct {
	Feature int // index of the feature being reconstructed
	Reason  string
}

func (e *ErrCorruptGeometry) Error() string {
	return fmt.Sprintf("corrupt geometry at feature %d: %s", e.Feature, e.Reason)
}
