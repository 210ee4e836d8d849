// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mcp

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/agentberlin/pagesnake/internal/app"
	"github.com/agentberlin/pagesnake/internal/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName is the implementation name announced to MCP clients
const ServerName = "pagesnake"

// MCPServer exposes the pagesnake App over the MCP protocol
type MCPServer struct {
	server *mcp.Server
	app    *app.App
	logger *log.Logger
}

// NewMCPServer creates an MCP server backed by coreApp
func NewMCPServer(coreApp *app.App) (*MCPServer, error) {
	logger := log.New(os.Stderr, "[PageSnake MCP] ", log.LstdFlags)

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version.CurrentVersion,
	}, nil)

	s := &MCPServer{
		server: mcpServer,
		app:    coreApp,
		logger: logger,
	}

	s.registerTools()

	logger.Printf("MCP server initialized successfully")
	return s, nil
}

// GetServer returns the internal MCP server instance
func (s *MCPServer) GetServer() *mcp.Server {
	return s.server
}

// Handler returns the streamable HTTP handler of the server
func (s *MCPServer) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(req *http.Request) *mcp.Server {
			return s.server
		},
		nil, // Use default StreamableHTTPOptions
	)
}

// RunStdio serves a single client over stdin/stdout until ctx is done
func (s *MCPServer) RunStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Close performs cleanup
func (s *MCPServer) Close() error {
	s.logger.Printf("Shutting down MCP server...")
	return nil
}
