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

// PageSnake CLI
//
// Command-line interface for PageSnake, the landing page analyzer. Analyzes
// pages from the web, HTML files or zip archives and manages the local
// analysis cache.
//
// Usage:
//
//	pagesnake <command> [flags]
//
// Commands:
//
//	analyze    Analyze a URL, .html file or .zip archive
//	list       List stored analyses
//	show       Show a stored analysis
//	export     Export a stored analysis to JSON, CSV or Markdown
//	delete     Delete a stored analysis
//	config     Show or change the load settings of a domain
//	platforms  List detectable landing page platforms
//	version    Show version information
package main

import (
	"fmt"
	"os"

	"github.com/agentberlin/pagesnake/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	case "config":
		err = runConfig(os.Args[2:])
	case "platforms":
		err = runPlatforms(os.Args[2:])
	case "version", "-v", "--version":
		err = runVersion(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`PageSnake CLI %s - Landing page analyzer

Usage:
  pagesnake <command> [flags]

Commands:
  analyze    Analyze a URL, .html file or .zip archive
  list       List stored analyses
  show       Show a stored analysis
  export     Export a stored analysis to JSON, CSV or Markdown
  delete     Delete a stored analysis
  config     Show or change the load settings of a domain
  platforms  List detectable landing page platforms
  version    Show version information
  help       Show this help message

Examples:
  # Analyze a landing page
  pagesnake analyze https://example.com/offer

  # Analyze a saved page and write the full result to a file
  pagesnake analyze ./landing.zip -o analysis.json

  # Render a quiz page in headless Chrome, skipping the cache
  pagesnake analyze https://example.com/quiz --render --no-cache

  # Export the links of an analysis as CSV
  pagesnake export <id> --format csv -o ./export

Environment:
  Settings are read from a .env file and PAGESNAKE_* variables
  (PAGESNAKE_USER_AGENT, PAGESNAKE_RENDER, PAGESNAKE_EMBED_IMAGES, ...).

Use "pagesnake <command> --help" for more information about a command.
`, version.CurrentVersion)
}
