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

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/agentberlin/pagesnake"
	"gorm.io/gorm"
)

// DomainConfigUpdate carries the editable fields of a DomainConfig
type DomainConfigUpdate struct {
	RenderingEnabled bool
	InitialWaitMs    int
	FinalWaitMs      int
	EmbedImages      bool
	UserAgent        string
	RobotsTxtMode    string
}

// GetOrCreateDomainConfig retrieves the settings of a domain or creates them with defaults
func (s *Store) GetOrCreateDomainConfig(domain string) (*DomainConfig, error) {
	var config DomainConfig

	result := s.db.Where("domain = ?", domain).First(&config)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		config = DomainConfig{
			Domain:        domain,
			InitialWaitMs: 1500,
			FinalWaitMs:   500,
			RobotsTxtMode: "ignore",
		}
		if err := s.db.Create(&config).Error; err != nil {
			return nil, fmt.Errorf("failed to create domain config: %v", err)
		}
		return &config, nil
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get domain config: %v", result.Error)
	}
	return &config, nil
}

// FindDomainConfig returns the settings of a domain, or nil when none were saved
func (s *Store) FindDomainConfig(domain string) (*DomainConfig, error) {
	var config DomainConfig
	result := s.db.Where("domain = ?", domain).First(&config)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get domain config: %v", result.Error)
	}
	return &config, nil
}

// UpdateDomainConfig updates the settings of a domain, creating them first if needed
func (s *Store) UpdateDomainConfig(domain string, update DomainConfigUpdate) error {
	config, err := s.GetOrCreateDomainConfig(domain)
	if err != nil {
		return err
	}

	config.RenderingEnabled = update.RenderingEnabled
	if update.InitialWaitMs > 0 {
		config.InitialWaitMs = update.InitialWaitMs
	}
	if update.FinalWaitMs > 0 {
		config.FinalWaitMs = update.FinalWaitMs
	}
	config.EmbedImages = update.EmbedImages
	config.UserAgent = update.UserAgent
	if update.RobotsTxtMode != "" {
		config.RobotsTxtMode = update.RobotsTxtMode
	}

	return s.db.Save(config).Error
}

// ApplyTo overlays the domain settings on a copy of cfg
func (c *DomainConfig) ApplyTo(cfg *pagesnake.Config) *pagesnake.Config {
	out := *cfg
	if c == nil {
		return &out
	}
	out.EnableRendering = out.EnableRendering || c.RenderingEnabled
	out.EmbedImages = out.EmbedImages || c.EmbedImages
	if c.UserAgent != "" {
		out.UserAgent = c.UserAgent
	}
	if c.RobotsTxtMode != "" {
		out.RobotsTxtMode = c.RobotsTxtMode
	}
	if c.RenderingEnabled {
		rc := pagesnake.RenderingConfig{TimeoutSecs: 30}
		if cfg.RenderingConfig != nil {
			rc = *cfg.RenderingConfig
		}
		rc.InitialWaitMs = c.InitialWaitMs
		rc.FinalWaitMs = c.FinalWaitMs
		if total := time.Duration(rc.InitialWaitMs+rc.FinalWaitMs) * time.Millisecond; total >= time.Duration(rc.TimeoutSecs)*time.Second {
			rc.TimeoutSecs = int(total/time.Second) + 10
		}
		out.RenderingConfig = &rc
	}
	return &out
}
