// Package mcpserver exposes the version analysis as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with the nextver tools registered.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server advertising the analysis tools.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nextver",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "suggest_version",
		Description: "Analyze the diff and commit log between two git references and " +
			"suggest the next semantic version. Returns the suggestion kind, the " +
			"current and next version, the bonus total, the resolved refs, the " +
			"commit count, the line delta and the security risk tier.",
	}, handleSuggestVersion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "validate_semver",
		Description: "Validate a semantic version string. Strict mode accepts only a " +
			"bare X.Y.Z core without prerelease or build metadata.",
	}, handleValidateSemver)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "compare_semver",
		Description: "Compare two semantic versions by precedence. Returns -1, 0 or 1; " +
			"build metadata is ignored.",
	}, handleCompareSemver)
}
