package cascade

import (
	"sort"

	"github.com/aretw0/storyboard/pkg/domain"
)

// Preset is a named cascade configuration.
type Preset struct {
	ID          string               `json:"id"`
	Label       string               `json:"label"`
	Description string               `json:"description"`
	Config      domain.CascadeConfig `json:"config"`
}

var presets = map[string]Preset{
	"none": {
		ID: "none", Label: "None",
		Description: "All elements animate together",
		Config:      domain.CascadeConfig{Enabled: false},
	},
	"subtle": {
		ID: "subtle", Label: "Subtle",
		Description: "Short top-down ripple",
		Config:      cfg(30, domain.OriginFirst),
	},
	"cascade": {
		ID: "cascade", Label: "Cascade",
		Description: "Classic parent-then-children cascade",
		Config:      cfg(60, domain.OriginFirst),
	},
	"dramatic": {
		ID: "dramatic", Label: "Dramatic",
		Description: "Slow, pronounced staggering",
		Config:      cfg(120, domain.OriginFirst),
	},
	"reverse": {
		ID: "reverse", Label: "Reverse",
		Description: "Last sibling moves first",
		Config:      cfg(60, domain.OriginLast),
	},
	"center-out": {
		ID: "center-out", Label: "Center Out",
		Description: "Middle siblings lead, outer ones follow",
		Config:      cfg(60, domain.OriginCenter),
	},
	"edges-in": {
		ID: "edges-in", Label: "Edges In",
		Description: "Outer siblings lead, middle ones follow",
		Config:      cfg(60, domain.OriginEdges),
	},
}

func cfg(delay float64, origin domain.StaggerOrigin) domain.CascadeConfig {
	return domain.CascadeConfig{
		Enabled: true,
		Stagger: domain.StaggerConfig{PerElementDelay: delay, Origin: origin},
	}
}

// ApplyCascadePreset returns the config for presetID. Unknown ids yield a
// disabled config; the second result reports whether the preset exists.
func ApplyCascadePreset(presetID string) (domain.CascadeConfig, bool) {
	p, ok := presets[presetID]
	if !ok {
		return domain.CascadeConfig{}, false
	}
	out := p.Config
	out.Preset = p.ID
	return out, true
}

// Presets lists the catalogue sorted by id.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
