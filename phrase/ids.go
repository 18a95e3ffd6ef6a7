package phrase

import "fmt"

// IDs hands out slur and beam group ids. One IDs value belongs to one engraving
// run, so concurrent runs never share a sequence.
type IDs struct {
	slur int
	beam int
}

func NewIDs() *IDs {
	return &IDs{}
}

func (ids *IDs) NextSlur() string {
	ids.slur++
	return fmt.Sprintf("slur_%d", ids.slur)
}

func (ids *IDs) NextBeam() string {
	ids.beam++
	return fmt.Sprintf("beam_%d", ids.beam)
}
