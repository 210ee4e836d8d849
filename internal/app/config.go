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
	"fmt"

	"github.com/agentberlin/pagesnake/internal/store"
	"github.com/agentberlin/pagesnake/internal/types"
)

func configResponse(config *store.DomainConfig) *types.ConfigResponse {
	return &types.ConfigResponse{
		Domain:           config.Domain,
		RenderingEnabled: config.RenderingEnabled,
		InitialWaitMs:    config.InitialWaitMs,
		FinalWaitMs:      config.FinalWaitMs,
		EmbedImages:      config.EmbedImages,
		UserAgent:        config.UserAgent,
		RobotsTxtMode:    config.RobotsTxtMode,
	}
}

// GetConfigForDomain retrieves the load settings of the domain of urlStr
func (a *App) GetConfigForDomain(urlStr string) (*types.ConfigResponse, error) {
	if a.store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	_, domain, err := normalizeURL(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	config, err := a.store.GetOrCreateDomainConfig(domain)
	if err != nil {
		return nil, err
	}
	return configResponse(config), nil
}

// UpdateConfigForDomain updates the load settings of the domain of urlStr
func (a *App) UpdateConfigForDomain(urlStr string, update store.DomainConfigUpdate) (*types.ConfigResponse, error) {
	if a.store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	_, domain, err := normalizeURL(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	switch update.RobotsTxtMode {
	case "", "ignore", "respect":
	default:
		return nil, fmt.Errorf("invalid robots.txt mode %q: expected ignore or respect", update.RobotsTxtMode)
	}

	if err := a.store.UpdateDomainConfig(domain, update); err != nil {
		return nil, err
	}
	config, err := a.store.GetOrCreateDomainConfig(domain)
	if err != nil {
		return nil, err
	}
	return configResponse(config), nil
}
