package pathfind

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/dungeon-api/internal/engine/grid"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Segment asks for a corridor between two cells on behalf of graph edge Edge.
type Segment struct {
	Edge int
	From int
	To   int
}

// Corridor is a carved segment.
type Corridor struct {
	Segment
	Cells []int
}

// Failure is a segment that could not be routed.
type Failure struct {
	Segment
	Err error
}

// Report summarises a Carve run.
type Report struct {
	Corridors []Corridor
	Failures  []Failure
	// CarvedCells is the number of distinct cells turned into corridor.
	CarvedCells int
}

// Carve routes every segment in order and marks the empty cells along each
// path as visible corridor. Room cells keep their state. A segment with no
// path is recorded in Failures and the rest still carve.
func Carve(g *grid.Grid, segments []Segment) (*Report, error) {
	report := &Report{}
	carved := mapset.New[int]()

	for _, seg := range segments {
		p, err := FindPath(g, seg.From, seg.To)
		if err != nil {
			if errors.IsPathNotFound(err) {
				report.Failures = append(report.Failures, Failure{Segment: seg, Err: err})
				continue
			}
			return nil, errors.Wrapf(err, "failed to route edge %d", seg.Edge)
		}

		for _, i := range p.Cells {
			c := g.CellAt(i)
			if c.State == grid.StateRoom {
				continue
			}
			if c.State == grid.StateEmpty {
				carved.Put(i)
			}
			c.State = grid.StateCorridor
			c.Corridor = true
			c.Visible = true
		}
		report.Corridors = append(report.Corridors, Corridor{Segment: seg, Cells: p.Cells})
	}

	report.CarvedCells = carved.Size()
	return report, nil
}
