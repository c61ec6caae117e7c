// Package topology tracks the structural well-formedness of a memory
// hierarchy while it is being built.
package topology

// Balance counts fan-out stages (crossbars) against fan-in stages
// (de-crossbars) built so far. A hierarchy is well formed when every
// crossbar is eventually closed by a de-crossbar below it.
//
// A Balance is created once per hierarchy and handed to every stage builder.
// It is only used while the hierarchy is assembled.
type Balance struct {
	count   int
	fanOuts int
	fanIns  int
}

// NewBalance creates a Balance that reads zero.
func NewBalance() *Balance {
	return &Balance{}
}

// AnnounceFanOut records that a fan-out stage has been built.
func (b *Balance) AnnounceFanOut() {
	b.count++
	b.fanOuts++
}

// AnnounceFanIn records that a fan-in stage has been built.
func (b *Balance) AnnounceFanIn() {
	b.count--
	b.fanIns++
}

// Count returns the number of fan-out stages not closed by a fan-in stage.
// It is negative if more fan-in stages than fan-out stages were built.
func (b *Balance) Count() int {
	return b.count
}

// CheckBalanced returns true if every fan-out stage has been paired.
func (b *Balance) CheckBalanced() bool {
	return b.count == 0
}

// NumFanOuts returns the number of fan-out stages built.
func (b *Balance) NumFanOuts() int {
	return b.fanOuts
}

// NumFanIns returns the number of fan-in stages built.
func (b *Balance) NumFanIns() int {
	return b.fanIns
}
