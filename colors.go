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

package pagesnake

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	colorLiteralPattern = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b|(?i:rgba?|hsla?)\([^)]*\)`)
	colorFuncArgs       = regexp.MustCompile(`[-+]?\d*\.?\d+%?`)
)

// namedColors are the CSS keywords that show up on landing pages
var namedColors = map[string]string{
	"black": "#000000", "white": "#ffffff", "red": "#ff0000", "green": "#008000",
	"blue": "#0000ff", "yellow": "#ffff00", "orange": "#ffa500", "purple": "#800080",
	"gray": "#808080", "grey": "#808080", "silver": "#c0c0c0", "navy": "#000080",
	"teal": "#008080", "maroon": "#800000", "olive": "#808000", "lime": "#00ff00",
	"aqua": "#00ffff", "cyan": "#00ffff", "fuchsia": "#ff00ff", "magenta": "#ff00ff",
	"pink": "#ffc0cb", "gold": "#ffd700", "crimson": "#dc143c", "tomato": "#ff6347",
	"coral": "#ff7f50", "salmon": "#fa8072", "darkred": "#8b0000", "darkblue": "#00008b",
	"darkgreen": "#006400", "lightgray": "#d3d3d3", "lightgrey": "#d3d3d3",
	"darkgray": "#a9a9a9", "darkgrey": "#a9a9a9", "whitesmoke": "#f5f5f5",
	"gainsboro": "#dcdcdc", "beige": "#f5f5dc", "ivory": "#fffff0", "indigo": "#4b0082",
	"violet": "#ee82ee", "royalblue": "#4169e1", "dodgerblue": "#1e90ff",
	"steelblue": "#4682b4", "skyblue": "#87ceeb", "forestgreen": "#228b22",
	"seagreen": "#2e8b57", "limegreen": "#32cd32", "firebrick": "#b22222",
	"orangered": "#ff4500", "darkorange": "#ff8c00", "chocolate": "#d2691e",
	"slategray": "#708090", "slategrey": "#708090", "midnightblue": "#191970",
}

// colorProperties are the declarations whose values are scanned for keywords
var colorProperties = map[string]bool{
	"color": true, "background": true, "background-color": true, "border": true,
	"border-color": true, "border-top": true, "border-bottom": true, "border-left": true,
	"border-right": true, "outline": true, "outline-color": true, "fill": true, "stroke": true,
	"box-shadow": true, "text-shadow": true,
}

// colorsInValue returns the normalized colors of one declaration value
func colorsInValue(property, value string) []string {
	var out []string
	for _, lit := range colorLiteralPattern.FindAllString(value, -1) {
		if hex, ok := normalizeColor(lit); ok {
			out = append(out, hex)
		}
	}
	if colorProperties[strings.ToLower(strings.TrimSpace(property))] {
		stripped := colorLiteralPattern.ReplaceAllString(value, " ")
		words := strings.FieldsFunc(strings.ToLower(stripped), func(r rune) bool {
			return r < 'a' || r > 'z'
		})
		for _, w := range words {
			if hex, ok := namedColors[w]; ok {
				out = append(out, hex)
			}
		}
	}
	return out
}

// normalizeColor converts a hex, rgb(a), hsl(a) or named literal to
// lower-case six-digit hex. Fully transparent colors are rejected.
func normalizeColor(lit string) (string, bool) {
	lit = strings.ToLower(strings.TrimSpace(lit))
	if hex, ok := namedColors[lit]; ok {
		return hex, true
	}
	switch {
	case strings.HasPrefix(lit, "#"):
		return normalizeHex(lit[1:])
	case strings.HasPrefix(lit, "rgb"):
		args := colorFuncArgs.FindAllString(lit, -1)
		if len(args) < 3 {
			return "", false
		}
		if len(args) >= 4 && parseAlpha(args[3]) == 0 {
			return "", false
		}
		return fmt.Sprintf("#%02x%02x%02x", parseChannel(args[0]), parseChannel(args[1]), parseChannel(args[2])), true
	case strings.HasPrefix(lit, "hsl"):
		args := colorFuncArgs.FindAllString(lit, -1)
		if len(args) < 3 {
			return "", false
		}
		if len(args) >= 4 && parseAlpha(args[3]) == 0 {
			return "", false
		}
		h, _ := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
		s := parsePercent(args[1])
		l := parsePercent(args[2])
		r, g, b := hslToRGB(h, s, l)
		return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
	}
	return "", false
}

func normalizeHex(h string) (string, bool) {
	switch len(h) {
	case 3, 4:
		if len(h) == 4 && h[3] == '0' {
			return "", false
		}
		return "#" + string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}), true
	case 6:
		return "#" + h, true
	case 8:
		if h[6:] == "00" {
			return "", false
		}
		return "#" + h[:6], true
	}
	return "", false
}

func parseChannel(s string) int {
	if strings.HasSuffix(s, "%") {
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return clampByte(v * 255 / 100)
	}
	v, _ := strconv.ParseFloat(s, 64)
	return clampByte(v)
}

func parseAlpha(s string) float64 {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// parsePercent returns a 0..1 fraction for "50%" or "0.5"
func parsePercent(s string) float64 {
	if strings.HasSuffix(s, "%") {
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return v / 100
	}
	v, _ := strconv.ParseFloat(s, 64)
	if v > 1 {
		return v / 100
	}
	return v
}

func clampByte(v float64) int {
	return int(math.Round(math.Max(0, math.Min(255, v))))
}

func hslToRGB(h, s, l float64) (int, int, int) {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	if s == 0 {
		v := clampByte(l * 255)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return clampByte(hueToRGB(p, q, h+1.0/3) * 255),
		clampByte(hueToRGB(p, q, h) * 255),
		clampByte(hueToRGB(p, q, h-1.0/3) * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// luma is the ITU-R BT.601 perceived brightness (0-255) of a #rrggbb color
func luma(hex string) float64 {
	if len(hex) != 7 {
		return 0
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0
	}
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	return 0.299*r + 0.587*g + 0.114*b
}
