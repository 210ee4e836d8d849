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
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentberlin/pagesnake"
	"github.com/agentberlin/pagesnake/internal/store"
)

// Exporter writes a stored analysis to disk
type Exporter struct {
	analysis  *pagesnake.ComponentAnalysis
	outputDir string
	format    string
}

// Export writes the analysis in the configured format
func (e *Exporter) Export() error {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	switch e.format {
	case "json":
		return writeJSON(e.path("analysis.json"), e.analysis)
	case "csv":
		if err := e.exportLinksCSV(); err != nil {
			return fmt.Errorf("failed to export links: %v", err)
		}
		if err := e.exportComponentsCSV(); err != nil {
			return fmt.Errorf("failed to export components: %v", err)
		}
		if err := e.exportTrackingCSV(); err != nil {
			return fmt.Errorf("failed to export tracking codes: %v", err)
		}
		return nil
	case "md":
		return e.exportMarkdown()
	default:
		return fmt.Errorf("invalid format: %s (must be json, csv or md)", e.format)
	}
}

func (e *Exporter) path(name string) string {
	return filepath.Join(e.outputDir, e.analysis.ID+"_"+name)
}

func (e *Exporter) writeCSV(name string, header []string, rows [][]string) error {
	filePath := e.path(name)
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", filePath)
	return nil
}

func (e *Exporter) exportLinksCSV() error {
	header := []string{"ID", "Type", "URL", "Anchor", "Source", "Position", "Confidence", "Reason", "Selector"}
	rows := make([][]string, 0, len(e.analysis.Links))
	for _, l := range e.analysis.Links {
		rows = append(rows, []string{
			l.ID,
			string(l.Type),
			l.OriginalURL,
			l.AnchorText,
			l.Source,
			l.Position,
			strconv.FormatFloat(l.Confidence, 'f', 2, 64),
			l.DetectionReason,
			l.Selector,
		})
	}
	return e.writeCSV("links.csv", header, rows)
}

func (e *Exporter) exportComponentsCSV() error {
	header := []string{"ID", "Kind", "Role", "Section", "Text", "URL", "Selector"}
	rows := make([][]string, 0, len(e.analysis.Components))
	for _, c := range e.analysis.Components {
		rows = append(rows, []string{
			c.ID,
			string(c.Kind),
			c.Role,
			c.SectionID,
			c.Text,
			c.URL,
			c.Selector,
		})
	}
	return e.writeCSV("components.csv", header, rows)
}

func (e *Exporter) exportTrackingCSV() error {
	header := []string{"ID", "Type", "Vendor", "Action", "Selector"}
	rows := make([][]string, 0, len(e.analysis.TrackingCodes))
	for _, tc := range e.analysis.TrackingCodes {
		action := "keep"
		switch {
		case tc.ShouldReplace:
			action = "replace"
		case tc.ShouldRemove:
			action = "remove"
		}
		rows = append(rows, []string{tc.ID, string(tc.Type), tc.Vendor, action, tc.Selector})
	}
	return e.writeCSV("tracking.csv", header, rows)
}

// exportMarkdown writes the page as one Markdown document, section by section
func (e *Exporter) exportMarkdown() error {
	ca := e.analysis

	var b strings.Builder
	title := ca.Title
	if title == "" {
		title = ca.SourceURL
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if ca.SourceURL != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", ca.SourceURL)
	}
	fmt.Fprintf(&b, "Flow: %s, framework %s, vertical %s, tone %s\n\n", ca.Flow.Type, ca.Flow.Framework, ca.Vertical, ca.Tone)

	for _, s := range ca.Sections {
		fmt.Fprintf(&b, "<!-- section %d: %s (%s) -->\n\n", s.Order, s.Type, s.Purpose)
		if md := strings.TrimSpace(s.Markdown); md != "" {
			b.WriteString(md)
			b.WriteString("\n\n")
		}
	}

	filePath := e.path("page.md")
	if err := os.WriteFile(filePath, []byte(b.String()), 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", filePath)
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	var outputDir, format string
	fs.StringVar(&outputDir, "output", ".", "Output directory")
	fs.StringVar(&outputDir, "o", ".", "Output directory (shorthand)")
	fs.StringVar(&format, "format", "json", "Output format: json, csv, md")
	fs.StringVar(&format, "f", "json", "Output format (shorthand)")

	fs.Usage = func() {
		fmt.Println(`Usage: pagesnake export [flags] <id>

Export a stored analysis. The csv format writes links, components and
tracking codes as separate files; md writes the page content as Markdown.

Flags:`)
		fs.PrintDefaults()
		fmt.Println(`
Examples:
  pagesnake export 6f1c... -o ./export
  pagesnake export 6f1c... --format csv -o ./export`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("analysis ID is required")
	}
	if format != "json" && format != "csv" && format != "md" {
		return fmt.Errorf("invalid format: %s (must be json, csv or md)", format)
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

	exporter := &Exporter{analysis: ca, outputDir: outputDir, format: format}
	return exporter.Export()
}
