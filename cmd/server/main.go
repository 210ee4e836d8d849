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

// PageSnake HTTP Server
//
// Serves the PageSnake MCP tools over streamable HTTP under /mcp, with a
// health probe under /health. With -stdio the MCP server runs over
// stdin/stdout instead.
//
// Usage:
//
//	pagesnake-server [flags]
//
// Flags:
//
//	-host string    Host to bind the server to (default "0.0.0.0")
//	-port int       Port to run the server on (default 8080)
//	-config string  YAML config file
//	-stdio          Serve MCP over stdio
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentberlin/pagesnake"
	"github.com/agentberlin/pagesnake/internal/app"
	"github.com/agentberlin/pagesnake/internal/mcp"
	"github.com/agentberlin/pagesnake/internal/store"
	"github.com/agentberlin/pagesnake/internal/version"
	"github.com/joho/godotenv"
)

func main() {
	port := flag.Int("port", 8080, "Port to run the HTTP server on")
	host := flag.String("host", "0.0.0.0", "Host to bind the HTTP server to")
	configPath := flag.String("config", "", "YAML config file")
	stdio := flag.Bool("stdio", false, "Serve MCP over stdin/stdout")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("PageSnake Server %s\n", version.CurrentVersion)
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg := pagesnake.NewDefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = pagesnake.LoadConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg.ApplyEnv()
	// stdout carries the MCP stream in stdio mode
	cfg.Logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

	st, err := store.NewStore()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	coreApp := app.NewApp(st, cfg, &app.NoOpEmitter{})
	coreApp.Startup(ctx)

	mcpServer, err := mcp.NewMCPServer(coreApp)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}
	defer mcpServer.Close()
	defer pagesnake.CloseGlobalRenderer()

	if *stdio {
		if err := mcpServer.RunStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("MCP server failed: %v", err)
		}
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpServer.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := coreApp.CheckSystemHealth()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "ok",
			"version": version.CurrentVersion,
			"chrome":  health.ChromeAvailable,
		})
	})

	// Analyses may render a page in Chrome, so writes get a longer timeout
	addr := fmt.Sprintf("%s:%d", *host, *port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("PageSnake Server %s starting on %s", version.CurrentVersion, addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
