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
	"fmt"
	"strings"

	"github.com/agentberlin/pagesnake"
	"github.com/agentberlin/pagesnake/internal/app"
	"github.com/agentberlin/pagesnake/internal/store"
	"github.com/agentberlin/pagesnake/internal/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools registers all MCP tools
func (s *MCPServer) registerTools() {
	s.logger.Printf("Registering MCP tools...")

	// Analysis tools
	s.registerAnalyzeLandingPageTool()
	s.registerGetAnalysisTool()
	s.registerListAnalysesTool()
	s.registerDeleteAnalysisTool()

	// Analysis detail tools
	s.registerGetPageLinksTool()
	s.registerGetPageTextTool()

	// Configuration tools
	s.registerGetDomainConfigTool()
	s.registerUpdateDomainConfigTool()
	s.registerListPlatformsTool()

	s.logger.Printf("All MCP tools registered successfully")
}

// AnalyzeLandingPageArgs defines the input schema for analyze_landing_page tool
type AnalyzeLandingPageArgs struct {
	URL     string `json:"url,omitempty" jsonschema:"URL of the landing page to fetch and analyze"`
	HTML    string `json:"html,omitempty" jsonschema:"raw HTML to analyze instead of fetching a URL"`
	BaseURL string `json:"baseUrl,omitempty" jsonschema:"base URL used to resolve relative references in html"`
	NoCache bool   `json:"noCache,omitempty" jsonschema:"re-analyze even if the same content was analyzed before"`
	Render  *bool  `json:"render,omitempty" jsonschema:"load the page through headless Chrome"`
}

// AnalyzeLandingPageResult defines the output schema for analyze_landing_page tool
type AnalyzeLandingPageResult struct {
	Success         bool   `json:"success"`
	AnalysisID      string `json:"analysisId,omitempty"`
	Cached          bool   `json:"cached"`
	Title           string `json:"title,omitempty"`
	FlowType        string `json:"flowType,omitempty"`
	Framework       string `json:"framework,omitempty"`
	Vertical        string `json:"vertical,omitempty"`
	Tone            string `json:"tone,omitempty"`
	Platform        string `json:"platform,omitempty"`
	TrackingURL     string `json:"trackingUrl,omitempty"`
	StrategySummary string `json:"strategySummary,omitempty"`
	Message         string `json:"message"`
}

// registerAnalyzeLandingPageTool registers the analyze_landing_page tool
func (s *MCPServer) registerAnalyzeLandingPageTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_landing_page",
		Description: "Analyzes a landing page given by URL or raw HTML: sections, components, funnel flow, tracking, style and persuasion elements",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeLandingPageArgs) (*mcp.CallToolResult, any, error) {
		s.logger.Printf("Tool called: analyze_landing_page url=%q html=%d bytes", args.URL, len(args.HTML))

		opts := app.AnalyzeOptions{NoCache: args.NoCache, Render: args.Render}

		var result *app.AnalyzeResult
		var err error
		switch {
		case args.URL != "" && args.HTML != "":
			return nil, AnalyzeLandingPageResult{Message: "Provide either url or html, not both"}, nil
		case args.URL != "":
			result, err = s.app.AnalyzeURL(ctx, args.URL, opts)
		case strings.TrimSpace(args.HTML) != "":
			result, err = s.app.AnalyzeHTML(ctx, args.HTML, args.BaseURL, opts)
		default:
			return nil, AnalyzeLandingPageResult{Message: "url or html is required"}, nil
		}
		if err != nil {
			return nil, AnalyzeLandingPageResult{
				Success: false,
				Message: fmt.Sprintf("Failed to analyze page: %v", err),
			}, nil
		}

		ca := result.Analysis
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: fmt.Sprintf("Analysis %s of %q\n\n%s", ca.ID, ca.Title, ca.StrategySummary),
				},
			},
		}, AnalyzeLandingPageResult{
			Success:         true,
			AnalysisID:      ca.ID,
			Cached:          result.Cached,
			Title:           ca.Title,
			FlowType:        string(ca.Flow.Type),
			Framework:       string(ca.Flow.Framework),
			Vertical:        string(ca.Vertical),
			Tone:            string(ca.Tone),
			Platform:        ca.Platform,
			TrackingURL:     ca.TrackingURL,
			StrategySummary: ca.StrategySummary,
			Message:         "Analysis completed",
		}, nil
	})
}

// AnalysisIDArgs is the input of the tools that look up one analysis
type AnalysisIDArgs struct {
	ID string `json:"id" jsonschema:"analysis ID returned by analyze_landing_page"`
}

// registerGetAnalysisTool registers the get_analysis tool
func (s *MCPServer) registerGetAnalysisTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_analysis",
		Description: "Retrieves the full stored analysis of a landing page",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalysisIDArgs) (*mcp.CallToolResult, any, error) {
		s.logger.Printf("Tool called: get_analysis for ID: %s", args.ID)

		analysis, err := s.app.GetAnalysis(args.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get analysis: %w", err)
		}
		return nil, analysis, nil
	})
}

// ListAnalysesArgs defines the input schema for list_analyses tool
type ListAnalysesArgs struct {
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of analyses, default 50"`
	Offset   int    `json:"offset,omitempty"`
	Vertical string `json:"vertical,omitempty" jsonschema:"only analyses of this vertical (adult, mainstream, ...)"`
	FlowType string `json:"flowType,omitempty" jsonschema:"only analyses of this flow type (single-page, multi-step, long-form, video-sales)"`
}

// ListAnalysesResult defines the output schema for list_analyses tool
type ListAnalysesResult struct {
	Analyses []types.AnalysisSummary `json:"analyses"`
	Count    int                     `json:"count"`
}

// registerListAnalysesTool registers the list_analyses tool
func (s *MCPServer) registerListAnalysesTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_analyses",
		Description: "Lists stored landing page analyses, newest first",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListAnalysesArgs) (*mcp.CallToolResult, any, error) {
		s.logger.Printf("Tool called: list_analyses")

		summaries, err := s.app.ListAnalyses(store.ListOptions{
			Limit:    args.Limit,
			Offset:   args.Offset,
			Vertical: args.Vertical,
			FlowType: args.FlowType,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list analyses: %w", err)
		}

		var text strings.Builder
		fmt.Fprintf(&text, "Found %d analyses:\n", len(summaries))
		for _, a := range summaries {
			fmt.Fprintf(&text, "\n- %s  %s  [%s, %s]  %s", a.ID, a.Title, a.FlowType, a.Vertical, a.SourceURL)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text.String()}},
		}, ListAnalysesResult{Analyses: summaries, Count: len(summaries)}, nil
	})
}

// DeleteAnalysisResult defines the output schema for delete_analysis tool
type DeleteAnalysisResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// registerDeleteAnalysisTool registers the delete_analysis tool
func (s *MCPServer) registerDeleteAnalysisTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_analysis",
		Description: "Deletes a stored analysis",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalysisIDArgs) (*mcp.CallToolResult, any, error) {
		s.logger.Printf("Tool called: delete_analysis for ID: %s", args.ID)

		if err := s.app.DeleteAnalysis(args.ID); err != nil {
			return nil, DeleteAnalysisResult{
				Success: false,
				Message: fmt.Sprintf("Failed to delete analysis: %v", err),
			}, nil
		}
		return nil, DeleteAnalysisResult{Success: true, Message: "Analysis deleted"}, nil
	})
}

// PageLinksArgs defines the input schema for get_page_links tool
type PageLinksArgs struct {
	ID   string `json:"id" jsonschema:"analysis ID"`
	Type string `json:"type,omitempty" jsonschema:"only links of this type (cta, tracking, affiliate, navigation, ...)"`
}

// PageLinksResult defines the output schema for get_page_links tool
type PageLinksResult struct {
	AnalysisID  string                   `json:"analysisId"`
	TrackingURL string                   `json:"trackingUrl,omitempty"`
	Links       []pagesnake.DetectedLink `json:"links"`
}

// registerGetPageLinksTool registers the get_page_links tool
func (s *MCPServer) registerGetPageLinksTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_page_links",
		Description: "Retrieves the classified outbound links of an analyzed page",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PageLinksArgs) (*mcp.CallToolResult, any, error) {
		s.logger.Printf("Tool called: get_page_links for ID: %s", args.ID)

		analysis, err := s.app.GetAnalysis(args.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get analysis: %w", err)
		}

		links := make([]pagesnake.DetectedLink, 0, len(analysis.Links))
		for _, l := range analysis.Links {
			if args.Type == "" || string(l.Type) == args.Type {
				links = append(links, l)
			}
		}

		var text strings.Builder
		fmt.Fprintf(&text, "%d links", len(links))
		for _, l := range links {
			fmt.Fprintf(&text, "\n- [%s %.2f] %s %q", l.Type, l.Confidence, l.OriginalURL, l.AnchorText)
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text.String()}},
		}, PageLinksResult{AnalysisID: analysis.ID, TrackingURL: analysis.TrackingURL, Links: links}, nil
	})
}

// PageTextResult defines the output schema for get_page_text tool
type PageTextResult struct {
	AnalysisID string                `json:"analysisId"`
	Blocks     []pagesnake.TextBlock `json:"blocks"`
}

// registerGetPageTextTool registers the get_page_text tool
func (s *MCPServer) registerGetPageTextTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_page_text",
		Description: "Retrieves the visible copy of an analyzed page in document order",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalysisIDArgs) (*mcp.CallToolResult, any, error) {
		s.logger.Printf("Tool called: get_page_text for ID: %s", args.ID)

		analysis, err := s.app.GetAnalysis(args.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get analysis: %w", err)
		}

		var text strings.Builder
		for _, b := range analysis.TextBlocks {
			text.WriteString(b.OriginalText)
			text.WriteString("\n")
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text.String()}},
		}, PageTextResult{AnalysisID: analysis.ID, Blocks: analysis.TextBlocks}, nil
	})
}

// DomainConfigArgs defines the input schema for get_domain_config tool
type DomainConfigArgs struct {
	URL string `json:"url" jsonschema:"URL or domain"`
}

// registerGetDomainConfigTool registers the get_domain_config tool
func (s *MCPServer) registerGetDomainConfigTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_domain_config",
		Description: "Retrieves the load settings used for pages of a domain",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DomainConfigArgs) (*mcp.CallToolResult, any, error) {
		s.logger.Printf("Tool called: get_domain_config for URL: %s", args.URL)

		config, err := s.app.GetConfigForDomain(args.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get domain config: %w", err)
		}
		return nil, config, nil
	})
}

// UpdateDomainConfigArgs defines the input schema for update_domain_config tool
type UpdateDomainConfigArgs struct {
	URL              string  `json:"url" jsonschema:"URL or domain"`
	RenderingEnabled *bool   `json:"renderingEnabled,omitempty"`
	InitialWaitMs    *int    `json:"initialWaitMs,omitempty"`
	FinalWaitMs      *int    `json:"finalWaitMs,omitempty"`
	EmbedImages      *bool   `json:"embedImages,omitempty"`
	UserAgent        *string `json:"userAgent,omitempty"`
	RobotsTxtMode    *string `json:"robotsTxtMode,omitempty" jsonschema:"ignore or respect"`
}

// registerUpdateDomainConfigTool registers the update_domain_config tool
func (s *MCPServer) registerUpdateDomainConfigTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_domain_config",
		Description: "Updates the load settings of a domain; omitted fields keep their current value",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args UpdateDomainConfigArgs) (*mcp.CallToolResult, any, error) {
		s.logger.Printf("Tool called: update_domain_config for URL: %s", args.URL)

		current, err := s.app.GetConfigForDomain(args.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get domain config: %w", err)
		}

		update := store.DomainConfigUpdate{
			RenderingEnabled: current.RenderingEnabled,
			InitialWaitMs:    current.InitialWaitMs,
			FinalWaitMs:      current.FinalWaitMs,
			EmbedImages:      current.EmbedImages,
			UserAgent:        current.UserAgent,
			RobotsTxtMode:    current.RobotsTxtMode,
		}
		if args.RenderingEnabled != nil {
			update.RenderingEnabled = *args.RenderingEnabled
		}
		if args.InitialWaitMs != nil {
			update.InitialWaitMs = *args.InitialWaitMs
		}
		if args.FinalWaitMs != nil {
			update.FinalWaitMs = *args.FinalWaitMs
		}
		if args.EmbedImages != nil {
			update.EmbedImages = *args.EmbedImages
		}
		if args.UserAgent != nil {
			update.UserAgent = *args.UserAgent
		}
		if args.RobotsTxtMode != nil {
			update.RobotsTxtMode = *args.RobotsTxtMode
		}

		config, err := s.app.UpdateConfigForDomain(args.URL, update)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to update domain config: %w", err)
		}
		return nil, config, nil
	})
}

// PlatformsResult defines the output schema for list_platforms tool
type PlatformsResult struct {
	Platforms any `json:"platforms"`
}

// registerListPlatformsTool registers the list_platforms tool
func (s *MCPServer) registerListPlatformsTool() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_platforms",
		Description: "Lists the landing page builders and frameworks the analyzer detects",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		return nil, PlatformsResult{Platforms: s.app.GetPlatforms()}, nil
	})
}
