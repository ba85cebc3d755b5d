package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/internal/handlers/dungeon/v1alpha1"
)

var (
	genSeed  int64
	genRooms int
	genTTL   int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a dungeon",
	Long: `Generate a dungeon on the server. Examples:

  generate --rooms 10
  generate --seed 42 --rooms 5 --ttl 3600`,
	Args: cobra.NoArgs,
	RunE: generateDungeon,
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", -1, "Seed to generate from (-1 lets the server pick)")
	generateCmd.Flags().IntVar(&genRooms, "rooms", 0, "Number of rooms (0 uses the server default)")
	generateCmd.Flags().Int64Var(&genTTL, "ttl", 0, "Seconds to keep the dungeon (0 uses the server default)")
}

func generateDungeon(cmd *cobra.Command, args []string) error {
	req := &v1alpha1.GenerateDungeonRequest{TTLSeconds: genTTL}
	req.Params.NumberOfRooms = genRooms
	if genSeed >= 0 {
		req.Seed = &genSeed
	}

	var resp v1alpha1.DungeonResponse
	if err := call(func(c v1alpha1.DungeonServiceClient) rpc { return c.GenerateDungeon }, req, &resp); err != nil {
		return fmt.Errorf("failed to generate dungeon: %w", err)
	}

	return printDungeon(&resp)
}
