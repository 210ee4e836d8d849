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

package platform

// PlatformInfo contains metadata about a platform
type PlatformInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// GetAllPlatforms returns every detectable platform in detection order
func GetAllPlatforms() []PlatformInfo {
	return []PlatformInfo{
		{ID: string(PlatformClickFunnels), Name: "ClickFunnels", Category: "Funnel Builder", Description: "Sales funnel and quiz page builder"},
		{ID: string(PlatformLeadpages), Name: "Leadpages", Category: "Funnel Builder", Description: "Landing page and opt-in builder"},
		{ID: string(PlatformUnbounce), Name: "Unbounce", Category: "Funnel Builder", Description: "Landing page builder with A/B testing"},
		{ID: string(PlatformInstapage), Name: "Instapage", Category: "Funnel Builder", Description: "Post-click landing page platform"},
		{ID: string(PlatformSystemeIO), Name: "Systeme.io", Category: "Funnel Builder", Description: "All-in-one funnel and email platform"},
		{ID: string(PlatformGoHighLevel), Name: "GoHighLevel", Category: "Funnel Builder", Description: "Agency CRM with funnel pages"},
		{ID: string(PlatformKajabi), Name: "Kajabi", Category: "Course Platform", Description: "Course and membership sales pages"},
		{ID: string(PlatformCarrd), Name: "Carrd", Category: "No-Code Platform", Description: "One-page site builder"},
		{ID: string(PlatformWebflow), Name: "Webflow", Category: "No-Code Platform", Description: "Visual web design tool"},
		{ID: string(PlatformShopify), Name: "Shopify", Category: "E-commerce", Description: "E-commerce platform"},
		{ID: string(PlatformWix), Name: "Wix", Category: "No-Code Platform", Description: "Website builder platform"},
		{ID: string(PlatformWordPress), Name: "WordPress", Category: "CMS", Description: "PHP-based content management system"},
		{ID: string(PlatformNextJS), Name: "Next.js", Category: "JavaScript Framework", Description: "React framework with SSR/SSG"},
		{ID: string(PlatformReact), Name: "React", Category: "JavaScript Framework", Description: "Client-side React application"},
	}
}
