package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/KirkDiggler/dungeon-api/internal/engine"
	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/rng"
	dungeonlayout "github.com/KirkDiggler/dungeon-api/internal/repositories/dungeon_layout"
	"github.com/KirkDiggler/dungeon-api/internal/render"
)

var (
	genSeed      int64
	genParams    entities.GenerationParams
	genRows      int
	genCols      int
	genWallCol   int
	genJSON      bool
	genNoColor   bool
	genShowGrid  bool
	genHideRooms bool
	genHideCorr  bool
	genShowTri   bool
	genShowMST   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon locally and print it",
	Long: `Run the layout pipeline in process and print an ASCII map and summary, or the
full layout as JSON. The same seed and parameters always print the same dungeon.`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.Int64Var(&genSeed, "seed", -1, "Seed to generate from (-1 draws a new one)")
	f.IntVar(&genParams.NumberOfRooms, "rooms", engine.DefaultRooms, "Number of rooms (clamped to 3-20)")
	f.IntVar(&genParams.MinRoomSize, "min-size", 0, "Minimum room size (0 uses the default)")
	f.IntVar(&genParams.MaxRoomSize, "max-size", 0, "Maximum room size (0 uses the default)")
	f.IntVar(&genParams.Margin, "margin", 0, "Extra spacing between rooms (0 uses the default)")
	f.IntVar(&genParams.MaxAttempts, "attempts", 0, "Placement attempts per room (0 uses the default)")
	f.IntVar(&genRows, "rows", 0, "Grid rows (0 uses the default)")
	f.IntVar(&genCols, "cols", 0, "Grid columns (0 uses the default)")
	f.IntVar(&genWallCol, "wall-col", -1, "Sever every cell in this column so corridors cannot cross it")
	f.BoolVar(&genJSON, "json", false, "Print the layout as JSON")
	f.BoolVar(&genNoColor, "no-color", false, "Disable colored output")
	f.BoolVar(&genShowGrid, "show-grid", false, "Draw empty cells")
	f.BoolVar(&genHideRooms, "hide-rooms", false, "Do not draw room cells")
	f.BoolVar(&genHideCorr, "hide-corridors", false, "Do not draw corridor cells")
	f.BoolVar(&genShowTri, "show-triangulation", false, "Draw and list the triangulation edges")
	f.BoolVar(&genShowMST, "show-mst", false, "Draw and list the spanning tree edges")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := engine.DefaultConfig()
	if genRows > 0 {
		cfg.Grid.Rows = genRows
	}
	if genCols > 0 {
		cfg.Grid.Cols = genCols
	}
	if genWallCol >= 0 {
		for row := 0; row < cfg.Grid.Rows; row++ {
			cfg.Walls = append(cfg.Walls, row*cfg.Grid.Cols+genWallCol)
		}
	}

	e, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	svc, err := dungeon.NewOrchestrator(&dungeon.Config{
		Engine:      e,
		Repository:  dungeonlayout.NewInMemory(clock.New()),
		IDGenerator: idgen.NewSequential("local"),
		SeedSource:  rng.NewSeedSource(clock.New()),
	})
	if err != nil {
		return fmt.Errorf("failed to create dungeon orchestrator: %w", err)
	}

	input := &dungeon.GenerateDungeonInput{Params: genParams}
	if genSeed >= 0 {
		input.Seed = &genSeed
	}

	out, err := svc.GenerateDungeon(context.Background(), input)
	if err != nil {
		return fmt.Errorf("failed to generate dungeon: %w", err)
	}

	if genJSON {
		data, err := json.MarshalIndent(out.Layout, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal layout: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	useColor := !genNoColor && term.IsTerminal(int(os.Stdout.Fd()))
	color.Enable = useColor

	r := render.New(render.Options{
		ShowGrid:          genShowGrid,
		ShowRooms:         !genHideRooms,
		ShowCorridors:     !genHideCorr,
		ShowTriangulation: genShowTri,
		ShowMST:           genShowMST,
		Color:             useColor,
	})

	fmt.Print(r.Map(out.Layout))
	fmt.Println()
	fmt.Print(r.Summary(out.Layout))
	return nil
}
