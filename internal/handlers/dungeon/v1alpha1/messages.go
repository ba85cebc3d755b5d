package v1alpha1

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// GenerateDungeonRequest is the GenerateDungeon request body
type GenerateDungeonRequest struct {
	Seed       *int64                    `json:"seed,omitempty"`
	NewSeed    bool                      `json:"new_seed,omitempty"`
	Params     entities.GenerationParams `json:"params"`
	TTLSeconds int64                     `json:"ttl_seconds,omitempty"`
}

// GetDungeonRequest is the GetDungeon request body
type GetDungeonRequest struct {
	DungeonID string `json:"dungeon_id"`
}

// RegenerateDungeonRequest is the RegenerateDungeon request body
type RegenerateDungeonRequest struct {
	DungeonID string `json:"dungeon_id"`
	Seed      *int64 `json:"seed,omitempty"`
	NewSeed   bool   `json:"new_seed,omitempty"`
}

// DeleteDungeonRequest is the DeleteDungeon request body
type DeleteDungeonRequest struct {
	DungeonID string `json:"dungeon_id"`
}

// ListDungeonsRequest is the ListDungeons request body
type ListDungeonsRequest struct {
	Limit int `json:"limit,omitempty"`
}

// DungeonResponse carries a layout back from Generate, Get and Regenerate
type DungeonResponse struct {
	Dungeon *entities.DungeonLayout `json:"dungeon"`
}

// DeleteDungeonResponse is the DeleteDungeon response body
type DeleteDungeonResponse struct {
	Deleted bool `json:"deleted"`
}

// ListDungeonsResponse is the ListDungeons response body
type ListDungeonsResponse struct {
	DungeonIDs []string `json:"dungeon_ids"`
}

// Encode converts a message into a Struct
func Encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}

	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, errors.Wrap(err, "failed to convert message to struct")
	}
	return s, nil
}

// Decode fills v from a Struct. Unknown fields are rejected.
func Decode(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}

	raw, err := protojson.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to read struct")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}
