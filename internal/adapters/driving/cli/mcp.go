package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/consolidator/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve consolidation tools to an MCP client",
	Long: `Serve the consolidation workflow as MCP tools and resources: list assets,
inspect usages, plan and apply replacements, delete unreferenced duplicates.

The server speaks JSON-RPC over stdio unless --port is given, in which case
it serves streamable HTTP on --host:--port until interrupted.

Examples:
  consolidator mcp serve
  consolidator mcp serve --port 8080
  consolidator mcp serve --host 0.0.0.0 --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().String("host", "127.0.0.1", "interface to bind when serving HTTP")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	port, err := flags.GetInt("port")
	if err != nil {
		return fmt.Errorf("reading --port: %w", err)
	}
	host, err := flags.GetString("host")
	if err != nil {
		return fmt.Errorf("reading --host: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{Consolidation: consolidationService}, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port <= 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	fmt.Fprintf(cmd.ErrOrStderr(), "serving MCP on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
