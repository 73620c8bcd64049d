package profile

import (
	"context"
	"strings"
)

// Profile is the optional business context folded into prompts. Every field
// may be empty.
type Profile struct {
	Name     string `yaml:"name"`
	Industry string `yaml:"industry,omitempty"`
	Audience string `yaml:"audience,omitempty"`
	Tone     string `yaml:"tone,omitempty"`
	Goals    string `yaml:"goals,omitempty"`
	Location string `yaml:"location,omitempty"`
	Products string `yaml:"products,omitempty"`
	Website  string `yaml:"website,omitempty"`
}

// Field is one labeled, non-empty profile value.
type Field struct {
	Label string
	Value string
}

// Fields returns the present values in a fixed display order.
func (p *Profile) Fields() []Field {
	if p == nil {
		return nil
	}
	all := []Field{
		{"Business name", p.Name},
		{"Industry", p.Industry},
		{"Target audience", p.Audience},
		{"Brand voice", p.Tone},
		{"Goals", p.Goals},
		{"Location", p.Location},
		{"Products or services", p.Products},
		{"Website", p.Website},
	}
	fields := make([]Field, 0, len(all))
	for _, f := range all {
		if v := strings.TrimSpace(f.Value); v != "" {
			fields = append(fields, Field{Label: f.Label, Value: v})
		}
	}
	return fields
}

// IsEmpty reports whether the profile carries no usable context.
func (p *Profile) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Lookup finds a profile by name. A missing profile is reported as nil, nil:
// absence is a normal case, not an error.
type Lookup interface {
	Get(ctx context.Context, name string) (*Profile, error)
}
