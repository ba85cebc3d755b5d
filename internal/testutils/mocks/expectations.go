// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	dungeonlayout "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout"
	dungeonlayoutmock "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout/mock"
)

// ExpectLayoutGet makes the repository return layout for its ID
func ExpectLayoutGet(ctx context.Context, repo *dungeonlayoutmock.MockRepository, layout *entities.DungeonLayout) {
	repo.EXPECT().
		Get(ctx, &dungeonlayout.GetInput{ID: layout.ID}).
		Return(&dungeonlayout.GetOutput{Layout: layout}, nil)
}

// ExpectLayoutNotFound makes the repository report id as missing
func ExpectLayoutNotFound(ctx context.Context, repo *dungeonlayoutmock.MockRepository, id string) {
	repo.EXPECT().
		Get(ctx, &dungeonlayout.GetInput{ID: id}).
		Return(nil, errors.NotFoundf("dungeon layout %s not found", id))
}

// ExpectLayoutSave accepts any save and echoes the layout back. The saved
// layout is written to captured when it is non-nil.
func ExpectLayoutSave(ctx context.Context, repo *dungeonlayoutmock.MockRepository, captured **entities.DungeonLayout) {
	repo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *dungeonlayout.SaveInput) (*dungeonlayout.SaveOutput, error) {
			if captured != nil {
				*captured = input.Layout
			}
			return &dungeonlayout.SaveOutput{Layout: input.Layout}, nil
		})
}
