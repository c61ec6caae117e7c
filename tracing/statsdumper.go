package tracing

import (
	"github.com/sarchlab/memxbar/datarecording"
	"github.com/sarchlab/memxbar/mem/xbar"
	"github.com/sarchlab/memxbar/sim"
)

// StatsTable is the table that StatsDumper writes to.
const StatsTable = "xbar_stats"

// A StatsSource is a crossbar that keeps statistics.
type StatsSource interface {
	sim.Named
	Stats() xbar.Stats
}

type statsTableEntry struct {
	XBar     string
	EndTime  float64
	ReadHit  uint64
	WriteHit uint64
}

// StatsDumper writes the statistics of crossbars into a database when the
// simulation ends.
type StatsDumper struct {
	backend datarecording.DataRecorder
	sources []StatsSource
}

// NewStatsDumper creates a StatsDumper that writes into the backend.
func NewStatsDumper(backend datarecording.DataRecorder) *StatsDumper {
	backend.CreateTable(StatsTable, statsTableEntry{})

	return &StatsDumper{backend: backend}
}

// Add registers a crossbar to dump.
func (d *StatsDumper) Add(s StatsSource) {
	d.sources = append(d.sources, s)
}

// Handle implements sim.SimulationEndHandler.
func (d *StatsDumper) Handle(now sim.VTimeInSec) {
	for _, s := range d.sources {
		stats := s.Stats()
		d.backend.InsertData(StatsTable, statsTableEntry{
			XBar:     s.Name(),
			EndTime:  float64(now),
			ReadHit:  stats.ReadHit,
			WriteHit: stats.WriteHit,
		})
	}

	d.backend.Flush()
}
