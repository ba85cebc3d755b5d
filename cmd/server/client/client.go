// Package client provides commands that call a running dungeon server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dungeon-api/internal/handlers/dungeon/v1alpha1"
	"github.com/KirkDiggler/dungeon-api/internal/render"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Output flags
	outputJSON bool
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the dungeon API",
	Long:  `Client commands call a running dungeon server over gRPC.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print responses as JSON")

	ClientCmd.AddCommand(generateCmd)
	ClientCmd.AddCommand(getCmd)
	ClientCmd.AddCommand(regenerateCmd)
	ClientCmd.AddCommand(deleteCmd)
	ClientCmd.AddCommand(listCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createDungeonClient creates a dungeon service client
func createDungeonClient() (v1alpha1.DungeonServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewDungeonServiceClient(conn), cleanup, nil
}

type rpc func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

// call encodes req, invokes method with the configured timeout and decodes
// the reply into resp.
func call(method func(v1alpha1.DungeonServiceClient) rpc, req, resp any) error {
	client, cleanup, err := createDungeonClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	in, err := v1alpha1.Encode(req)
	if err != nil {
		return err
	}

	out, err := method(client)(ctx, in)
	if err != nil {
		return err
	}

	return v1alpha1.Decode(out, resp)
}

func printDungeon(resp *v1alpha1.DungeonResponse) error {
	if outputJSON {
		return printJSON(resp)
	}
	if resp.Dungeon == nil {
		return fmt.Errorf("server returned no dungeon")
	}

	r := render.New(render.DefaultOptions())
	fmt.Print(r.Map(resp.Dungeon))
	fmt.Println()
	fmt.Print(r.Summary(resp.Dungeon))
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
