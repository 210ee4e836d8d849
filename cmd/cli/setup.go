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

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/agentberlin/pagesnake"
	"github.com/agentberlin/pagesnake/internal/app"
	"github.com/agentberlin/pagesnake/internal/store"
	"github.com/joho/godotenv"
)

// CLIEmitter prints analysis progress to stderr
type CLIEmitter struct {
	quiet bool
}

func (e *CLIEmitter) Emit(eventType app.EventType, data interface{}) {
	if e.quiet {
		return
	}
	switch eventType {
	case app.EventAnalysisStarted:
		if m, ok := data.(map[string]string); ok {
			fmt.Fprintf(os.Stderr, "Analyzing %s...\n", m["source"])
		}
	case app.EventAnalysisCompleted:
		if ca, ok := data.(*pagesnake.ComponentAnalysis); ok {
			fmt.Fprintf(os.Stderr, "Done: %s (%d sections, %d links)\n", ca.ID, len(ca.Sections), len(ca.Links))
		}
	case app.EventAnalysisFailed:
		if m, ok := data.(map[string]string); ok {
			fmt.Fprintf(os.Stderr, "Failed: %s: %s\n", m["source"], m["error"])
		}
	}
}

// setupOptions are the flags shared by commands that need the core app
type setupOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

// loadEnv reads a .env file from the working directory when one exists
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %v", err)
	}
	return nil
}

// loadConfig builds the loader configuration from the config file and environment
func loadConfig(opts setupOptions) (*pagesnake.Config, error) {
	if err := loadEnv(); err != nil {
		return nil, err
	}

	var cfg *pagesnake.Config
	if opts.configPath != "" {
		var err error
		cfg, err = pagesnake.LoadConfigFile(opts.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = pagesnake.NewDefaultConfig()
	}
	cfg.ApplyEnv()

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, nil
}

// setupApp opens the local store and creates the core app
func setupApp(opts setupOptions) (*app.App, *store.Store, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.NewStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	coreApp := app.NewApp(st, cfg, &CLIEmitter{quiet: opts.quiet})
	coreApp.Startup(context.Background())
	return coreApp, st, nil
}

// truncate truncates a string to the specified length
func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}
