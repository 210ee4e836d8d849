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
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentberlin/pagesnake"
	"github.com/agentberlin/pagesnake/internal/app"
)

type analyzeFlags struct {
	output      string
	configPath  string
	noCache     bool
	render      bool
	noRender    bool
	embedImages bool
	quiet       bool
	verbose     bool
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	flags := &analyzeFlags{}

	fs.StringVar(&flags.output, "output", "", "Write the analysis JSON to a file instead of stdout")
	fs.StringVar(&flags.output, "o", "", "Output file (shorthand)")
	fs.StringVar(&flags.configPath, "config", "", "YAML config file")
	fs.StringVar(&flags.configPath, "c", "", "Config file (shorthand)")
	fs.BoolVar(&flags.noCache, "no-cache", false, "Analyze again even if the page was analyzed before")
	fs.BoolVar(&flags.render, "render", false, "Render the page in headless Chrome")
	fs.BoolVar(&flags.noRender, "no-render", false, "Never render, even if the domain config enables it")
	fs.BoolVar(&flags.embedImages, "embed-images", false, "Embed images as data URIs")
	fs.BoolVar(&flags.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&flags.quiet, "q", false, "Quiet (shorthand)")
	fs.BoolVar(&flags.verbose, "verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Println(`Usage: pagesnake analyze [flags] <url|file.html|file.zip>...

Analyze one or more landing pages and print the structured analysis as JSON.
Results are cached in ~/.pagesnake; an unchanged page is served from the cache.

Flags:`)
		fs.PrintDefaults()
		fmt.Println(`
Examples:
  pagesnake analyze https://example.com/offer
  pagesnake analyze ./saved-page.zip -o analysis.json
  pagesnake analyze --render --no-cache https://example.com/quiz`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		fs.Usage()
		return fmt.Errorf("at least one URL or file is required")
	}
	if flags.render && flags.noRender {
		return fmt.Errorf("--render and --no-render are mutually exclusive")
	}

	coreApp, st, err := setupApp(setupOptions{
		configPath: flags.configPath,
		verbose:    flags.verbose,
		quiet:      flags.quiet,
	})
	if err != nil {
		return err
	}
	defer st.Close()
	defer pagesnake.CloseGlobalRenderer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.AnalyzeOptions{NoCache: flags.noCache, EmbedImages: flags.embedImages}
	if flags.render || flags.noRender {
		render := flags.render
		opts.Render = &render
	}

	var results []*pagesnake.ComponentAnalysis
	var failed int
	for _, target := range targets {
		var res *app.AnalyzeResult
		if app.IsAnalyzableFile(target) {
			res, err = coreApp.AnalyzeFile(ctx, target, opts)
		} else {
			res, err = coreApp.AnalyzeURL(ctx, target, opts)
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			if len(targets) == 1 {
				return err
			}
			continue
		}
		if res.Cached && !flags.quiet {
			fmt.Fprintf(os.Stderr, "Served from cache (use --no-cache to analyze again)\n")
		}
		results = append(results, res.Analysis)
	}

	var payload interface{} = results
	if len(targets) == 1 {
		payload = results[0]
	}
	if err := writeJSON(flags.output, payload); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(targets))
	}
	return nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %v", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
