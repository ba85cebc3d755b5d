package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/internal/handlers/dungeon/v1alpha1"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored dungeons, newest first",
	Args:  cobra.NoArgs,
	RunE:  listDungeons,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of IDs (0 lists all)")
}

func listDungeons(cmd *cobra.Command, args []string) error {
	var resp v1alpha1.ListDungeonsResponse
	req := &v1alpha1.ListDungeonsRequest{Limit: listLimit}
	if err := call(func(c v1alpha1.DungeonServiceClient) rpc { return c.ListDungeons }, req, &resp); err != nil {
		return fmt.Errorf("failed to list dungeons: %w", err)
	}

	if outputJSON {
		return printJSON(&resp)
	}
	if len(resp.DungeonIDs) == 0 {
		fmt.Println("No dungeons stored")
		return nil
	}
	for _, id := range resp.DungeonIDs {
		fmt.Println(id)
	}
	return nil
}
