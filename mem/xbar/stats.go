package xbar

// Stats is a snapshot of the counters of a crossbar.
type Stats struct {
	ReadHit  uint64
	WriteHit uint64
}

// ReadHit returns the number of requests routed to a bank. Requests that
// opted out of statistics are not counted.
func (c *Comp) ReadHit() uint64 {
	return c.readHit.Load()
}

// WriteHit returns the number of write requests routed to a bank.
func (c *Comp) WriteHit() uint64 {
	return c.writeHit.Load()
}

// Stats returns a snapshot of all the counters.
func (c *Comp) Stats() Stats {
	return Stats{
		ReadHit:  c.ReadHit(),
		WriteHit: c.WriteHit(),
	}
}

// ResetStats clears all the counters.
func (c *Comp) ResetStats() {
	c.readHit.Store(0)
	c.writeHit.Store(0)
}
