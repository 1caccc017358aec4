package transform

import (
	"slices"

	"github.com/erraggy/oasnorm/oaserrors"
)

// Preset names.
const (
	PresetNoop      = "noop"
	PresetResolve   = "resolve"
	PresetFlatten   = "flatten"
	PresetStripDocs = "strip-docs"
	PresetSchema    = "schema"
	PresetNormalize = "normalize"
)

// DefaultPreset is used when no preset or stage list is given.
const DefaultPreset = PresetNormalize

func resolveStages() Pipeline {
	return Pipeline{ResolveExternalRefs(), InlineExternalValues()}
}

func flattenStages() Pipeline {
	return Pipeline{ResolveAllOf(), ResolveOneOf(), ResolveAnyOf()}
}

func stripDocsStages() Pipeline {
	return Pipeline{StripFieldPrefix("x-"), StripField("example"), StripField("externalDocs")}
}

var presets = map[string]func() Pipeline{
	PresetNoop:      func() Pipeline { return Pipeline{} },
	PresetResolve:   resolveStages,
	PresetFlatten:   flattenStages,
	PresetStripDocs: stripDocsStages,
	PresetSchema: func() Pipeline {
		return Concat(resolveStages(), flattenStages(), Pipeline{RemoveUnusedSchemas(), CheckRefs()})
	},
	PresetNormalize: func() Pipeline {
		return Concat(resolveStages(), flattenStages(), stripDocsStages(),
			Pipeline{ExtractEnums(), RemoveUnusedSchemas(), CheckRefs()})
	},
}

// Preset returns a fresh copy of the named pipeline.
func Preset(name string) (Pipeline, error) {
	build, ok := presets[name]
	if !ok {
		return nil, &oaserrors.ConfigError{
			Option:  "preset",
			Value:   name,
			Allowed: PresetNames(),
			Message: "unknown preset",
		}
	}
	return build(), nil
}

// PresetNames returns the available preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
