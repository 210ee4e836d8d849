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

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentberlin/pagesnake"
	"github.com/agentberlin/pagesnake/internal/store"
)

// maxResourceURLLength is the longest sub-resource URL the loader requests
const maxResourceURLLength = 2048

// AnalyzeOptions tunes one analysis
type AnalyzeOptions struct {
	// NoCache re-analyzes even when an analysis of the same content exists
	NoCache bool
	// Render overrides the rendering setting of the domain when set
	Render *bool
	// EmbedImages inlines images as data URIs
	EmbedImages bool
}

// AnalyzeResult is an analysis and whether it came from the cache
type AnalyzeResult struct {
	Analysis *pagesnake.ComponentAnalysis `json:"analysis"`
	Cached   bool                         `json:"cached"`
}

// AnalyzeURL loads a landing page from the web and analyzes it
func (a *App) AnalyzeURL(ctx context.Context, rawURL string, opts AnalyzeOptions) (*AnalyzeResult, error) {
	pageURL, domain, err := normalizeURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	cfg, err := a.configForDomain(domain, opts)
	if err != nil {
		return nil, err
	}

	a.emitter.Emit(EventAnalysisStarted, map[string]string{"source": pageURL})
	pd, err := a.newLoader(cfg).LoadURL(ctx, pageURL)
	if err != nil {
		a.emitter.Emit(EventAnalysisFailed, map[string]string{"source": pageURL, "error": err.Error()})
		return nil, err
	}
	return a.analyzeDocument(ctx, pd, opts)
}

// AnalyzeHTML analyzes raw HTML. baseURL may be empty.
func (a *App) AnalyzeHTML(ctx context.Context, html, baseURL string, opts AnalyzeOptions) (*AnalyzeResult, error) {
	cfg := a.loadConfig(opts)
	cfg.EnableRendering = false

	source := baseURL
	if source == "" {
		source = "inline"
	}
	a.emitter.Emit(EventAnalysisStarted, map[string]string{"source": source})
	pd, err := a.newLoader(cfg).LoadHTML(ctx, html, baseURL)
	if err != nil {
		a.emitter.Emit(EventAnalysisFailed, map[string]string{"source": source, "error": err.Error()})
		return nil, err
	}
	return a.analyzeDocument(ctx, pd, opts)
}

// AnalyzeFile analyzes a .zip archive or an .html file from disk
func (a *App) AnalyzeFile(ctx context.Context, path string, opts AnalyzeOptions) (*AnalyzeResult, error) {
	cfg := a.loadConfig(opts)
	cfg.EnableRendering = false
	l := a.newLoader(cfg)

	a.emitter.Emit(EventAnalysisStarted, map[string]string{"source": path})

	var pd *pagesnake.ParsedDocument
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		pd, err = l.LoadZipFile(ctx, path)
	case ".html", ".htm":
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			pd, err = l.LoadHTML(ctx, string(data), "")
		}
		if pd != nil {
			pd.SourceURL = filepath.Base(path)
		}
	default:
		err = fmt.Errorf("unsupported file type %q: expected .html, .htm or .zip", filepath.Ext(path))
	}
	if err != nil {
		a.emitter.Emit(EventAnalysisFailed, map[string]string{"source": path, "error": err.Error()})
		return nil, err
	}
	return a.analyzeDocument(ctx, pd, opts)
}

// IsAnalyzableFile reports whether path names a file AnalyzeFile accepts
func IsAnalyzableFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".html", ".htm":
	default:
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// analyzeDocument returns the cached analysis of the document content or
// runs the analyzer and stores the result.
func (a *App) analyzeDocument(ctx context.Context, pd *pagesnake.ParsedDocument, opts AnalyzeOptions) (*AnalyzeResult, error) {
	if a.store != nil && !opts.NoCache {
		fingerprint, err := pagesnake.ComputeFingerprint(pd.HTML(), pagesnake.DefaultFingerprintConfig())
		if err == nil {
			cached, err := a.store.FindByFingerprint(fingerprint)
			if err != nil {
				a.logger.Warn("analysis cache lookup failed", "source", pd.SourceURL, "error", err)
			} else if cached != nil {
				a.logger.Info("analysis served from cache", "id", cached.ID, "source", pd.SourceURL)
				a.emitter.Emit(EventAnalysisCompleted, cached)
				return &AnalyzeResult{Analysis: cached, Cached: true}, nil
			}
		}
	}

	ca, err := a.analyzer.Analyze(ctx, pd)
	if err != nil {
		a.emitter.Emit(EventAnalysisFailed, map[string]string{"source": pd.SourceURL, "error": err.Error()})
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	if a.store != nil {
		if prev, err := a.store.GetAnalysis(ca.ID); err == nil {
			ca.CreatedAt = prev.CreatedAt
		}
		if err := a.store.SaveAnalysis(ca); err != nil {
			a.logger.Error("failed to save analysis", "id", ca.ID, "error", err)
		}
	}

	a.logger.Info("analysis completed", "id", ca.ID, "source", ca.SourceURL, "flow", ca.Flow.Type)
	a.emitter.Emit(EventAnalysisCompleted, ca)
	return &AnalyzeResult{Analysis: ca}, nil
}

// loadConfig copies the App config with the per-call options applied
func (a *App) loadConfig(opts AnalyzeOptions) *pagesnake.Config {
	cfg := *a.config
	if opts.EmbedImages {
		cfg.EmbedImages = true
	}
	if opts.Render != nil {
		cfg.EnableRendering = *opts.Render
	}
	return &cfg
}

// configForDomain applies the stored settings of domain, then the per-call options
func (a *App) configForDomain(domain string, opts AnalyzeOptions) (*pagesnake.Config, error) {
	var dc *store.DomainConfig
	if a.store != nil {
		var err error
		dc, err = a.store.FindDomainConfig(domain)
		if err != nil {
			return nil, err
		}
	}
	cfg := dc.ApplyTo(a.config)
	if opts.EmbedImages {
		cfg.EmbedImages = true
	}
	if opts.Render != nil {
		cfg.EnableRendering = *opts.Render
	}
	return cfg, nil
}
