package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/internal/handlers/dungeon/v1alpha1"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [dungeon-id]",
	Short: "Delete a stored dungeon",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteDungeon,
}

func deleteDungeon(cmd *cobra.Command, args []string) error {
	var resp v1alpha1.DeleteDungeonResponse
	req := &v1alpha1.DeleteDungeonRequest{DungeonID: args[0]}
	if err := call(func(c v1alpha1.DungeonServiceClient) rpc { return c.DeleteDungeon }, req, &resp); err != nil {
		return fmt.Errorf("failed to delete dungeon: %w", err)
	}

	if outputJSON {
		return printJSON(&resp)
	}
	fmt.Printf("Deleted %s: %t\n", args[0], resp.Deleted)
	return nil
}
