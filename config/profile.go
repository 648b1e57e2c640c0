package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/nstehr/brood/rules"
)

//go:embed profile.schema.json
var profileSchemaSrc string

var profileSchema = jsonschema.MustCompileString("profile.schema.json", profileSchemaSrc)

// LoadProfile reads a strategy profile from a YAML file. The document is
// checked against the profile schema, decoded over the faction's defaults
// (so a file only names what it changes), and clamped by Validate.
func LoadProfile(path string) (rules.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return rules.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	p, err := ParseProfile(raw)
	if err != nil {
		return rules.Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func ParseProfile(raw []byte) (rules.Profile, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return rules.Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if err := validateDoc(doc); err != nil {
		return rules.Profile{}, err
	}

	faction := rules.FactionZerg
	if m, ok := doc.(map[string]any); ok {
		if f, ok := m["faction"].(string); ok {
			faction = f
		}
	}
	p := DefaultProfileFor(faction)
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return rules.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return rules.Profile{}, err
	}
	return p, nil
}

// ResolveProfile loads path when set, otherwise picks the built-in profile
// for the race the host announced.
func ResolveProfile(path, race string) (rules.Profile, error) {
	if path == "" {
		return DefaultProfileFor(race), nil
	}
	return LoadProfile(path)
}

// DefaultProfileFor maps a race name to its built-in profile. Hosts differ
// in how they capitalize races, so the match ignores case.
func DefaultProfileFor(faction string) rules.Profile {
	switch strings.ToLower(strings.TrimSpace(faction)) {
	case rules.FactionTerran:
		return rules.DefaultTerranProfile()
	case rules.FactionProtoss:
		return rules.DefaultProtossProfile()
	default:
		return rules.DefaultProfile()
	}
}

// validateDoc runs the schema over a YAML document. YAML allows values JSON
// does not (infinities, non-string keys), so the tree is normalized and
// round-tripped through encoding/json first.
func validateDoc(doc any) error {
	norm, err := normalize(doc)
	if err != nil {
		return err
	}
	b, err := json.Marshal(norm)
	if err != nil {
		return fmt.Errorf("profile to json: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("profile to json: %w", err)
	}
	if err := profileSchema.Validate(v); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

func normalize(v any) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case float64:
		if math.IsInf(v, 1) {
			return "inf", nil
		}
		if math.IsNaN(v) || math.IsInf(v, -1) {
			return nil, fmt.Errorf("profile: unsupported number %v", v)
		}
		return v, nil
	default:
		return v, nil
	}
}
