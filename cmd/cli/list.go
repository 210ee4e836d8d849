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
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/agentberlin/pagesnake/internal/store"
)

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	var jsonOutput bool
	var limit, offset int
	var vertical, flowType string
	fs.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	fs.IntVar(&limit, "limit", 50, "Maximum number of analyses")
	fs.IntVar(&limit, "n", 50, "Limit (shorthand)")
	fs.IntVar(&offset, "offset", 0, "Number of analyses to skip")
	fs.StringVar(&vertical, "vertical", "", "Only analyses of this vertical")
	fs.StringVar(&flowType, "flow", "", "Only analyses of this flow type (single-page, multi-step, long-form, video-sales)")

	fs.Usage = func() {
		fmt.Println(`Usage: pagesnake list [flags]

List stored analyses, most recently updated first.

Flags:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	coreApp, st, err := setupApp(setupOptions{quiet: true})
	if err != nil {
		return err
	}
	defer st.Close()

	analyses, err := coreApp.ListAnalyses(store.ListOptions{
		Limit:    limit,
		Offset:   offset,
		Vertical: vertical,
		FlowType: flowType,
	})
	if err != nil {
		return fmt.Errorf("failed to list analyses: %v", err)
	}

	if jsonOutput {
		return writeJSON("", analyses)
	}

	if len(analyses) == 0 {
		fmt.Println("No analyses found.")
		return nil
	}

	fmt.Printf("%-36s  %-40s  %-12s  %-12s  %-16s\n", "ID", "Source", "Flow", "Vertical", "Updated")
	fmt.Println("----------------------------------------------------------------------------------------------------------------------------")
	for _, a := range analyses {
		updated := time.Unix(a.UpdatedAt, 0).Format("2006-01-02 15:04")
		fmt.Printf("%-36s  %-40s  %-12s  %-12s  %-16s\n", a.ID, truncate(a.SourceURL, 40), a.FlowType, a.Vertical, updated)
	}
	return nil
}

func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)

	var jsonOutput bool
	fs.BoolVar(&jsonOutput, "json", false, "Print the full analysis as JSON")

	fs.Usage = func() {
		fmt.Println(`Usage: pagesnake show [flags] <id>

Show a stored analysis.

Flags:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("analysis ID is required")
	}

	coreApp, st, err := setupApp(setupOptions{quiet: true})
	if err != nil {
		return err
	}
	defer st.Close()

	ca, err := coreApp.GetAnalysis(fs.Arg(0))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("analysis %s not found", fs.Arg(0))
		}
		return err
	}

	if jsonOutput {
		return writeJSON("", ca)
	}

	fmt.Printf("ID:          %s\n", ca.ID)
	fmt.Printf("Source:      %s\n", ca.SourceURL)
	fmt.Printf("Title:       %s\n", ca.Title)
	fmt.Printf("Platform:    %s\n", ca.Platform)
	fmt.Printf("Flow:        %s (framework %s)\n", ca.Flow.Type, ca.Flow.Framework)
	fmt.Printf("Vertical:    %s\n", ca.Vertical)
	fmt.Printf("Tone:        %s\n", ca.Tone)
	if ca.Flow.CTAStrategy.PrimaryCTA != "" {
		fmt.Printf("Primary CTA: %s (%s)\n", ca.Flow.CTAStrategy.PrimaryCTA, ca.Flow.CTAStrategy.Frequency)
	}
	if ca.TrackingURL != "" {
		fmt.Printf("Tracking:    %s\n", ca.TrackingURL)
	}
	fmt.Printf("Analyzed:    %s\n", ca.UpdatedAt.Format(time.RFC3339))

	fmt.Printf("\nSections (%d):\n", len(ca.Sections))
	for _, s := range ca.Sections {
		fmt.Printf("  %2d. %-14s %-12s %s\n", s.Order, s.Type, s.Purpose, truncate(s.Headline, 60))
	}

	fmt.Printf("\nLinks (%d):\n", len(ca.Links))
	for _, l := range ca.Links {
		fmt.Printf("  %-10s %-50s %s\n", l.Type, truncate(l.OriginalURL, 50), truncate(l.AnchorText, 30))
	}

	if ca.StrategySummary != "" {
		fmt.Printf("\nStrategy:\n  %s\n", ca.StrategySummary)
	}
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println(`Usage: pagesnake delete <id>

Delete a stored analysis.`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("analysis ID is required")
	}

	coreApp, st, err := setupApp(setupOptions{quiet: true})
	if err != nil {
		return err
	}
	defer st.Close()

	if err := coreApp.DeleteAnalysis(fs.Arg(0)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("analysis %s not found", fs.Arg(0))
		}
		return err
	}
	fmt.Printf("Deleted analysis %s\n", fs.Arg(0))
	return nil
}

func runPlatforms(args []string) error {
	fs := flag.NewFlagSet("platforms", flag.ExitOnError)

	var jsonOutput bool
	fs.BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	if err := fs.Parse(args); err != nil {
		return err
	}

	coreApp, st, err := setupApp(setupOptions{quiet: true})
	if err != nil {
		return err
	}
	defer st.Close()

	platforms := coreApp.GetPlatforms()
	if jsonOutput {
		return writeJSON("", platforms)
	}

	fmt.Printf("%-16s  %-24s  %-14s\n", "ID", "Name", "Category")
	fmt.Println("------------------------------------------------------------")
	for _, p := range platforms {
		fmt.Printf("%-16s  %-24s  %-14s\n", p.ID, p.Name, p.Category)
	}
	return nil
}
