// Package dungeon implements the dungeon orchestrator: it picks seeds, runs
// the layout engine and stores the results.
package dungeon

//go:generate mockgen -destination=mock/mock_service.go -package=dungeonmock github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/dungeon-api/internal/engine"
	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/rng"
	dungeonlayout "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout"
)

// Service defines the interface for dungeon operations
type Service interface {
	// GenerateDungeon lays out and stores a new dungeon
	GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*GenerateDungeonOutput, error)

	// GetDungeon loads a stored dungeon
	GetDungeon(ctx context.Context, input *GetDungeonInput) (*GetDungeonOutput, error)

	// RegenerateDungeon reruns a stored dungeon and overwrites it
	RegenerateDungeon(ctx context.Context, input *RegenerateDungeonInput) (*RegenerateDungeonOutput, error)

	// DeleteDungeon removes a stored dungeon
	DeleteDungeon(ctx context.Context, input *DeleteDungeonInput) (*DeleteDungeonOutput, error)

	// ListDungeons lists stored dungeon IDs
	ListDungeons(ctx context.Context, input *ListDungeonsInput) (*ListDungeonsOutput, error)
}

// Config holds the dependencies for the dungeon orchestrator
type Config struct {
	Engine      engine.Engine
	Repository  dungeonlayout.Repository
	IDGenerator idgen.Generator
	SeedSource  rng.SeedSource
	// TTL for stored dungeons. Zero uses the repository default.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SeedSource == nil {
		vb.RequiredField("SeedSource")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	engine     engine.Engine
	repository dungeonlayout.Repository
	idGen      idgen.Generator
	seeds      rng.SeedSource
	ttl        time.Duration
}

// NewOrchestrator creates a new dungeon orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:     cfg.Engine,
		repository: cfg.Repository,
		idGen:      cfg.IDGenerator,
		seeds:      cfg.SeedSource,
		ttl:        cfg.TTL,
	}, nil
}

// GenerateDungeon lays out and stores a new dungeon
func (o *orchestrator) GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*GenerateDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.TTL < 0 {
		return nil, errors.InvalidArgument("ttl must not be negative")
	}

	seed, err := o.pickSeed(input.Seed, input.NewSeed, nil)
	if err != nil {
		return nil, err
	}

	dungeonID := o.idGen.Generate()

	slog.Info("Dungeon generation requested",
		"dungeon_id", dungeonID,
		"seed", seed,
		"number_of_rooms", input.Params.NumberOfRooms,
	)

	layout, err := o.run(ctx, dungeonID, seed, input.Params)
	if err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, layout, input.TTL)
	if err != nil {
		return nil, err
	}

	slog.Info("Dungeon generated",
		"dungeon_id", dungeonID,
		"seed", seed,
		"rooms", len(saved.Rooms),
		"corridors", len(saved.Corridors),
		"unrouted_edges", len(saved.Diagnostics.UnroutedEdges),
	)

	return &GenerateDungeonOutput{Layout: saved}, nil
}

// GetDungeon loads a stored dungeon
func (o *orchestrator) GetDungeon(ctx context.Context, input *GetDungeonInput) (*GetDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DungeonID == "" {
		return nil, errors.InvalidArgument("dungeon ID is required")
	}

	out, err := o.repository.Get(ctx, &dungeonlayout.GetInput{ID: input.DungeonID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get dungeon %s", input.DungeonID)
	}

	return &GetDungeonOutput{Layout: out.Layout}, nil
}

// RegenerateDungeon reruns a stored dungeon and overwrites it
func (o *orchestrator) RegenerateDungeon(ctx context.Context, input *RegenerateDungeonInput) (*RegenerateDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DungeonID == "" {
		return nil, errors.InvalidArgument("dungeon ID is required")
	}

	existing, err := o.repository.Get(ctx, &dungeonlayout.GetInput{ID: input.DungeonID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get dungeon %s", input.DungeonID)
	}

	stored := existing.Layout.Seed
	seed, err := o.pickSeed(input.Seed, input.NewSeed, &stored)
	if err != nil {
		return nil, err
	}

	slog.Info("Dungeon regeneration requested",
		"dungeon_id", input.DungeonID,
		"previous_seed", stored,
		"seed", seed,
	)

	layout, err := o.run(ctx, input.DungeonID, seed, existing.Layout.Params)
	if err != nil {
		return nil, err
	}
	layout.CreatedAt = existing.Layout.CreatedAt

	saved, err := o.save(ctx, layout, 0)
	if err != nil {
		return nil, err
	}

	return &RegenerateDungeonOutput{Layout: saved}, nil
}

// DeleteDungeon removes a stored dungeon
func (o *orchestrator) DeleteDungeon(ctx context.Context, input *DeleteDungeonInput) (*DeleteDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DungeonID == "" {
		return nil, errors.InvalidArgument("dungeon ID is required")
	}

	out, err := o.repository.Delete(ctx, &dungeonlayout.DeleteInput{ID: input.DungeonID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete dungeon %s", input.DungeonID)
	}

	slog.Info("Dungeon deleted", "dungeon_id", input.DungeonID)

	return &DeleteDungeonOutput{Deleted: out.Deleted}, nil
}

// ListDungeons lists stored dungeon IDs
func (o *orchestrator) ListDungeons(ctx context.Context, input *ListDungeonsInput) (*ListDungeonsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	out, err := o.repository.List(ctx, &dungeonlayout.ListInput{Limit: input.Limit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list dungeons")
	}

	return &ListDungeonsOutput{DungeonIDs: out.IDs}, nil
}

// pickSeed returns requested unless a fresh seed is asked for, then fallback,
// then a seed from the source.
func (o *orchestrator) pickSeed(requested *int64, fresh bool, fallback *int64) (int64, error) {
	if !fresh {
		if requested != nil {
			if *requested < 0 {
				return 0, errors.InvalidParameterf("seed must not be negative, got %d", *requested).
					WithMeta("field", "seed")
			}
			return *requested, nil
		}
		if fallback != nil {
			return *fallback, nil
		}
	}
	return o.seeds.NewSeed(), nil
}

func (o *orchestrator) run(ctx context.Context, id string, seed int64, params entities.GenerationParams) (*entities.DungeonLayout, error) {
	out, err := o.engine.Regenerate(ctx, &engine.RegenerateInput{
		Seed:   seed,
		Params: paramsToEngine(params),
	})
	if err != nil {
		slog.Warn("Dungeon generation failed",
			"dungeon_id", id,
			"seed", seed,
			"error", err,
		)
		return nil, errors.Wrapf(err, "failed to generate dungeon %s", id)
	}

	return layoutToEntity(id, out), nil
}

func (o *orchestrator) save(ctx context.Context, layout *entities.DungeonLayout, ttl time.Duration) (*entities.DungeonLayout, error) {
	if ttl == 0 {
		ttl = o.ttl
	}

	out, err := o.repository.Save(ctx, &dungeonlayout.SaveInput{Layout: layout, TTL: ttl})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save dungeon %s", layout.ID)
	}

	return out.Layout, nil
}
