package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/internal/handlers/dungeon/v1alpha1"
)

var (
	regenSeed    int64
	regenNewSeed bool
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate [dungeon-id]",
	Short: "Rerun a stored dungeon",
	Long: `Rerun a stored dungeon with its stored parameters. Without flags the stored
seed is reused and the dungeon comes back unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: regenerateDungeon,
}

func init() {
	regenerateCmd.Flags().Int64Var(&regenSeed, "seed", -1, "Seed to rerun with (-1 keeps the stored seed)")
	regenerateCmd.Flags().BoolVar(&regenNewSeed, "new-seed", false, "Let the server draw a new seed")
}

func regenerateDungeon(cmd *cobra.Command, args []string) error {
	req := &v1alpha1.RegenerateDungeonRequest{
		DungeonID: args[0],
		NewSeed:   regenNewSeed,
	}
	if regenSeed >= 0 {
		req.Seed = &regenSeed
	}

	var resp v1alpha1.DungeonResponse
	if err := call(func(c v1alpha1.DungeonServiceClient) rpc { return c.RegenerateDungeon }, req, &resp); err != nil {
		return fmt.Errorf("failed to regenerate dungeon: %w", err)
	}

	return printDungeon(&resp)
}
