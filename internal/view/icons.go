package view

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// glyphPaths holds the inner SVG markup for each glyph name used by the catalog.
var glyphPaths = map[string]string{
	"shield-check":  `<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z"/><path d="m9 12 2 2 4-4"/>`,
	"cpu":           `<rect x="4" y="4" width="16" height="16" rx="2"/><rect x="9" y="9" width="6" height="6"/><path d="M9 1v3M15 1v3M9 20v3M15 20v3M20 9h3M20 14h3M1 9h3M1 14h3"/>`,
	"network":       `<rect x="16" y="16" width="6" height="6" rx="1"/><rect x="2" y="16" width="6" height="6" rx="1"/><rect x="9" y="2" width="6" height="6" rx="1"/><path d="M5 16v-3a1 1 0 0 1 1-1h12a1 1 0 0 1 1 1v3M12 12V8"/>`,
	"activity":      `<path d="M22 12h-4l-3 9L9 3l-3 9H2"/>`,
	"globe":         `<circle cx="12" cy="12" r="10"/><path d="M2 12h20M12 2a15.3 15.3 0 0 1 4 10 15.3 15.3 0 0 1-4 10 15.3 15.3 0 0 1-4-10 15.3 15.3 0 0 1 4-10z"/>`,
	"zap":           `<path d="M13 2 3 14h9l-1 8 10-12h-9l1-8z"/>`,
	"arrow-right":   `<path d="M5 12h14M12 5l7 7-7 7"/>`,
	"chevron-right": `<path d="m9 18 6-6-6-6"/>`,
}

// Icon renders an inline stroke icon. Unknown glyphs fall back to "zap".
func Icon(glyph string, class string) g.Node {
	path, ok := glyphPaths[glyph]
	if !ok {
		path = glyphPaths["zap"]
	}

	return g.El("svg",
		h.Class("icon "+class),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("fill", "none"),
		g.Attr("stroke", "currentColor"),
		g.Attr("stroke-width", "2"),
		g.Attr("stroke-linecap", "round"),
		g.Attr("stroke-linejoin", "round"),
		h.Aria("hidden", "true"),
		g.Raw(path),
	)
}
