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
	"flag"
	"fmt"
	"time"

	"github.com/agentberlin/pagesnake/internal/store"
	"github.com/agentberlin/pagesnake/internal/version"
)

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)

	var render, embed, userAgent, robots string
	var initialWait, finalWait int
	fs.StringVar(&render, "render", "", "Enable headless rendering for the domain (true/false)")
	fs.StringVar(&embed, "embed-images", "", "Embed images for the domain (true/false)")
	fs.StringVar(&userAgent, "user-agent", "", "User-Agent for the domain")
	fs.StringVar(&robots, "robots", "", "robots.txt mode: ignore or respect")
	fs.IntVar(&initialWait, "initial-wait", 0, "Milliseconds to wait after load before scrolling")
	fs.IntVar(&finalWait, "final-wait", 0, "Milliseconds to wait after scrolling")

	fs.Usage = func() {
		fmt.Println(`Usage: pagesnake config [flags] <url>

Show the load settings of a domain. Any flag changes the stored value.

Flags:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("URL is required")
	}

	coreApp, st, err := setupApp(setupOptions{quiet: true})
	if err != nil {
		return err
	}
	defer st.Close()

	changed := false
	fs.Visit(func(*flag.Flag) { changed = true })

	if !changed {
		cfg, err := coreApp.GetConfigForDomain(fs.Arg(0))
		if err != nil {
			return err
		}
		return writeJSON("", cfg)
	}

	current, err := coreApp.GetConfigForDomain(fs.Arg(0))
	if err != nil {
		return err
	}
	update := store.DomainConfigUpdate{
		RenderingEnabled: current.RenderingEnabled,
		InitialWaitMs:    initialWait,
		FinalWaitMs:      finalWait,
		EmbedImages:      current.EmbedImages,
		UserAgent:        current.UserAgent,
		RobotsTxtMode:    robots,
	}
	if render != "" {
		update.RenderingEnabled = render == "true" || render == "1" || render == "yes"
	}
	if embed != "" {
		update.EmbedImages = embed == "true" || embed == "1" || embed == "yes"
	}
	if userAgent != "" {
		update.UserAgent = userAgent
	}

	cfg, err := coreApp.UpdateConfigForDomain(fs.Arg(0), update)
	if err != nil {
		return err
	}
	return writeJSON("", cfg)
}

func runVersion(args []string) error {
	fs := flag.NewFlagSet("version", flag.ExitOnError)

	var check bool
	fs.BoolVar(&check, "check", false, "Check for a newer release")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("PageSnake CLI %s\n", version.CurrentVersion)
	if !check {
		return nil
	}

	coreApp, st, err := setupApp(setupOptions{quiet: true})
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := coreApp.CheckForUpdate(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %v", err)
	}
	if info.UpdateAvailable {
		fmt.Printf("A newer version is available: %s\n", info.LatestVersion)
	} else {
		fmt.Println("You are running the latest version.")
	}
	return nil
}
