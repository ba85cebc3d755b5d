package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/internal/handlers/dungeon/v1alpha1"
)

var getCmd = &cobra.Command{
	Use:   "get [dungeon-id]",
	Short: "Show a stored dungeon",
	Args:  cobra.ExactArgs(1),
	RunE:  getDungeon,
}

func getDungeon(cmd *cobra.Command, args []string) error {
	var resp v1alpha1.DungeonResponse
	req := &v1alpha1.GetDungeonRequest{DungeonID: args[0]}
	if err := call(func(c v1alpha1.DungeonServiceClient) rpc { return c.GetDungeon }, req, &resp); err != nil {
		return fmt.Errorf("failed to get dungeon: %w", err)
	}

	return printDungeon(&resp)
}
