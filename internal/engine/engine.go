package engine

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dungeon-api/internal/engine/delaunay"
	"github.com/KirkDiggler/dungeon-api/internal/engine/geometry"
	"github.com/KirkDiggler/dungeon-api/internal/engine/graph"
	"github.com/KirkDiggler/dungeon-api/internal/engine/grid"
	"github.com/KirkDiggler/dungeon-api/internal/engine/pathfind"
	"github.com/KirkDiggler/dungeon-api/internal/engine/placement"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/rng"
)

// RollerFactory returns the dice roller for a seed.
type RollerFactory func(seed int64) dice.Roller

// Config holds the engine's fixed setup
type Config struct {
	Grid  grid.Config
	Super delaunay.SuperConfig
	// Walls are cells with their connections removed; corridors route around them.
	Walls []int
	// NewRoller defaults to a seeded PCG roller.
	NewRoller RollerFactory
}

// DefaultConfig returns a 100x100 grid with default super-triangle sizing
func DefaultConfig() *Config {
	return &Config{
		Grid:  grid.DefaultConfig(),
		Super: delaunay.DefaultSuperConfig(),
	}
}

// Validate checks the grid and super-triangle settings
func (cfg *Config) Validate() error {
	vb := errors.NewParameterValidationBuilder()
	errors.ValidatePositive("super.increment", cfg.Super.Increment, vb)
	if cfg.Super.MarginIncrement < 0 {
		vb.Field("super.margin_increment", "must not be negative")
	}
	errors.ValidatePositive("super.scale", cfg.Super.Scale, vb)
	size := cfg.Grid.Rows * cfg.Grid.Cols
	for _, w := range cfg.Walls {
		if w < 0 || w >= size {
			vb.Fieldf("walls", "cell %d is outside the grid", w)
		}
	}
	if err := vb.Build(); err != nil {
		return err
	}
	return cfg.Grid.Validate()
}

type engine struct {
	mu        sync.Mutex
	grid      *grid.Grid
	super     delaunay.SuperConfig
	newRoller RollerFactory
}

// New builds the grid once. Every Regenerate reuses it.
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	g, err := grid.New(cfg.Grid)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Walls {
		g.Sever(w)
	}

	newRoller := cfg.NewRoller
	if newRoller == nil {
		newRoller = func(seed int64) dice.Roller { return rng.NewSeeded(seed) }
	}

	return &engine{
		grid:      g,
		super:     cfg.Super,
		newRoller: newRoller,
	}, nil
}

// Regenerate runs every stage in order. Placement exhaustion and invalid
// parameters abort the run and leave the grid empty. Degenerate triangles and
// unroutable corridors are recorded on the layout instead. Runs are
// serialized; ctx is checked between stages.
func (e *engine) Regenerate(ctx context.Context, input *RegenerateInput) (*RegenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	params, warnings := input.Params.Normalize()
	for _, w := range warnings {
		slog.Warn("Generation parameter adjusted", "seed", input.Seed, "warning", w)
	}
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid generation parameters")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	layout, err := e.run(ctx, input.Seed, params)
	if err != nil {
		e.grid.EmptyAll()
		return nil, err
	}

	return &RegenerateOutput{Layout: layout, Warnings: warnings}, nil
}

func (e *engine) run(ctx context.Context, seed int64, params Params) (*Layout, error) {
	e.grid.EmptyAll()

	rooms, err := placement.NewPlacer(e.grid, e.newRoller(seed)).Place(params.placementConfig())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to place rooms for seed %d", seed)
	}
	if err := checkContext(ctx, "placement"); err != nil {
		return nil, err
	}

	centers := make([]geometry.Point, len(rooms))
	for i := range rooms {
		centers[i] = rooms[i].Center
	}

	super, err := delaunay.SuperTriangle(e.superExtent(len(rooms)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build super-triangle")
	}
	tri, err := delaunay.Triangulate(centers, super)
	if err != nil {
		return nil, errors.Wrap(err, "failed to triangulate rooms")
	}
	if tri.Degenerate > 0 {
		slog.Warn("Skipped degenerate triangles", "seed", seed, "count", tri.Degenerate)
	}
	if err := checkContext(ctx, "triangulation"); err != nil {
		return nil, err
	}

	g := graph.Build(tri.Triangles)
	mst := graph.Kruskal(g)

	segments := make([]pathfind.Segment, len(mst.Edges))
	for i, ei := range mst.Edges {
		edge := g.Edges[ei]
		segments[i] = pathfind.Segment{
			Edge: ei,
			From: e.grid.IndexAt(g.Nodes[edge.From].Location),
			To:   e.grid.IndexAt(g.Nodes[edge.To].Location),
		}
	}

	report, err := pathfind.Carve(e.grid, segments)
	if err != nil {
		return nil, errors.Wrap(err, "failed to carve corridors")
	}
	for _, f := range report.Failures {
		slog.Warn("Corridor not carved",
			"seed", seed,
			"edge", f.Edge,
			"from_cell", f.From,
			"to_cell", f.To,
		)
	}

	slog.Debug("Dungeon layout generated",
		"seed", seed,
		"rooms", len(rooms),
		"triangles", len(tri.Triangles),
		"edges", len(g.Edges),
		"mst_edges", len(mst.Edges),
		"carved_cells", report.CarvedCells,
	)

	return &Layout{
		Seed:                seed,
		Params:              params,
		Grid:                e.grid.Config(),
		Cells:               slices.Clone(e.grid.Cells()),
		Rooms:               rooms,
		Triangles:           tri.Triangles,
		Graph:               g,
		MST:                 mst,
		Corridors:           report.Corridors,
		Failures:            report.Failures,
		DegenerateTriangles: tri.Degenerate,
		CarvedCells:         report.CarvedCells,
	}, nil
}

// superExtent grows the configured extent when the grid is large enough
// that the triangle would not enclose it.
func (e *engine) superExtent(rooms int) float64 {
	width, depth := e.grid.Bounds()
	return max(e.super.Extent(rooms), 4*max(width, depth))
}

func checkContext(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeCanceled, "generation canceled after "+stage)
	}
	return nil
}
