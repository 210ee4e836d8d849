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
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agentberlin/pagesnake/internal/types"
	"github.com/agentberlin/pagesnake/internal/version"
)

const (
	updateBaseURL = "https://storage.agentberlin.ai/pagesnake"
	versionURL    = updateBaseURL + "/version.txt"
)

// CheckForUpdate checks if a newer release is published
func (a *App) CheckForUpdate(ctx context.Context) (*types.UpdateInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.updateURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version info: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch version info: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return nil, fmt.Errorf("failed to read version info: %v", err)
	}
	latestVersion := strings.TrimSpace(string(body))

	return &types.UpdateInfo{
		CurrentVersion:  version.CurrentVersion,
		LatestVersion:   latestVersion,
		UpdateAvailable: compareVersions(latestVersion, version.CurrentVersion),
	}, nil
}

// compareVersions returns true if latest > current.
// Versions look like v0.0.1; missing parts count as 0.
func compareVersions(latest, current string) bool {
	latestParts := strings.Split(strings.TrimPrefix(latest, "v"), ".")
	currentParts := strings.Split(strings.TrimPrefix(current, "v"), ".")

	for i := 0; i < 3; i++ {
		l, c := versionPart(latestParts, i), versionPart(currentParts, i)
		if l != c {
			return l > c
		}
	}
	return false
}

func versionPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(parts[i])
	return n
}

// GetVersion returns the current version of the application
func (a *App) GetVersion() string {
	return version.CurrentVersion
}
