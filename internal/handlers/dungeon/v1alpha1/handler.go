// Package v1alpha1 serves the dungeon gRPC service
package v1alpha1

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon"
)

// HandlerConfig holds dependencies for the dungeon handler
type HandlerConfig struct {
	DungeonService dungeon.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.DungeonService == nil {
		return errors.InvalidArgument("dungeon service is required")
	}
	return nil
}

// Handler implements DungeonServiceServer
type Handler struct {
	dungeonService dungeon.Service
}

var _ DungeonServiceServer = (*Handler)(nil)

// NewHandler creates a new dungeon handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		dungeonService: cfg.DungeonService,
	}, nil
}

// GenerateDungeon lays out and stores a new dungeon
func (h *Handler) GenerateDungeon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body GenerateDungeonRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.TTLSeconds < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("ttl_seconds must not be negative"))
	}

	out, err := h.dungeonService.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{
		Seed:    body.Seed,
		NewSeed: body.NewSeed,
		Params:  body.Params,
		TTL:     time.Duration(body.TTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&DungeonResponse{Dungeon: out.Layout})
}

// GetDungeon loads a stored dungeon
func (h *Handler) GetDungeon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body GetDungeonRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.DungeonID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("dungeon_id is required"))
	}

	out, err := h.dungeonService.GetDungeon(ctx, &dungeon.GetDungeonInput{DungeonID: body.DungeonID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&DungeonResponse{Dungeon: out.Layout})
}

// RegenerateDungeon reruns a stored dungeon
func (h *Handler) RegenerateDungeon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body RegenerateDungeonRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.DungeonID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("dungeon_id is required"))
	}

	out, err := h.dungeonService.RegenerateDungeon(ctx, &dungeon.RegenerateDungeonInput{
		DungeonID: body.DungeonID,
		Seed:      body.Seed,
		NewSeed:   body.NewSeed,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&DungeonResponse{Dungeon: out.Layout})
}

// DeleteDungeon removes a stored dungeon
func (h *Handler) DeleteDungeon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body DeleteDungeonRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.DungeonID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("dungeon_id is required"))
	}

	out, err := h.dungeonService.DeleteDungeon(ctx, &dungeon.DeleteDungeonInput{DungeonID: body.DungeonID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&DeleteDungeonResponse{Deleted: out.Deleted})
}

// ListDungeons lists stored dungeon IDs
func (h *Handler) ListDungeons(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body ListDungeonsRequest
	if err := Decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.dungeonService.ListDungeons(ctx, &dungeon.ListDungeonsInput{Limit: body.Limit})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ListDungeonsResponse{DungeonIDs: out.DungeonIDs})
}

func respond(v any) (*structpb.Struct, error) {
	s, err := Encode(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return s, nil
}
