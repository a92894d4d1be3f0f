package designation

import (
	"en13813/internal/classes"
	dErrors "en13813/pkg/domain-errors"
)

// Parsed is the detailed outcome of decoding a designation.
type Parsed struct {
	Properties Properties `json:"properties"`
	// Ignored lists tokens that matched no rule, or matched a rule whose slot
	// an earlier token had already filled.
	Ignored []string `json:"ignored,omitempty"`
}

// matcher recognises one token kind. apply returns false when the target
// field is already populated.
type matcher struct {
	name  string
	match func(Token) bool
	apply func(*Properties, Token) bool
}

// matchers is the precedence order. The first matching rule claims the token.
var matchers = []matcher{
	{
		name:  "compressive",
		match: func(t Token) bool { return t.IsClass(classes.PrefixCompressive) },
		apply: func(p *Properties, t Token) bool { return setOnce(&p.Compressive, t.Raw) },
	},
	{
		name:  "flexural",
		match: func(t Token) bool { return t.IsClass(classes.PrefixFlexural) },
		apply: func(p *Properties, t Token) bool { return setOnce(&p.Flexural, t.Raw) },
	},
	{
		name:  "wear",
		match: isWearToken,
		apply: func(p *Properties, t Token) bool {
			if p.Wear != nil {
				return false
			}
			method, _ := classes.WearMethodForPrefix(t.Prefix)
			p.Wear = &WearResistance{Method: method, Class: t.Raw}
			return true
		},
	},
	{
		name:  "surface_hardness",
		match: func(t Token) bool { return t.IsClass(classes.PrefixSurfaceHardness) },
		apply: func(p *Properties, t Token) bool { return setOnce(&p.SurfaceHardness, t.Raw) },
	},
	{
		name:  "bond_strength",
		match: func(t Token) bool { return t.IsClass(classes.PrefixBondStrength) },
		apply: func(p *Properties, t Token) bool { return setOnce(&p.BondStrength, t.Raw) },
	},
	{
		name:  "impact_resistance",
		match: func(t Token) bool { return t.IsClass(classes.PrefixImpactResistance) },
		apply: func(p *Properties, t Token) bool { return setOnce(&p.ImpactResistance, t.Raw) },
	},
	{
		name: "indentation",
		match: func(t Token) bool {
			return t.IsClass(classes.PrefixIndentationCube) || t.IsClass(classes.PrefixIndentationPlate)
		},
		apply: func(p *Properties, t Token) bool { return setOnce(&p.Indentation, t.Raw) },
	},
	{
		name:  "fire",
		match: isFireToken,
		apply: func(p *Properties, t Token) bool { return setOnce(&p.FireClass, t.Raw) },
	},
	{
		name:  "heated",
		match: func(t Token) bool { return t.IsMarker(classes.HeatedMarker) },
		apply: func(p *Properties, _ Token) bool {
			if p.Heated {
				return false
			}
			p.Heated = true
			return true
		},
	},
}

func isWearToken(t Token) bool {
	for _, m := range classes.WearMethods() {
		if t.IsClass(m.Prefix()) {
			return true
		}
	}
	return false
}

func setOnce(dst *string, value string) bool {
	if *dst != "" {
		return false
	}
	*dst = value
	return true
}

// Parse decodes s. The first token must be one of the five binder tags;
// anything else is a CodeFormat error. Remaining tokens that match no rule
// are skipped.
func (c *Codec) Parse(s string) (Properties, error) {
	parsed, err := c.ParseDetailed(s)
	if err != nil {
		return Properties{}, err
	}
	return parsed.Properties, nil
}

// ParseDetailed decodes s and reports the tokens that were skipped.
func (c *Codec) ParseDetailed(s string) (Parsed, error) {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return Parsed{}, dErrors.New(dErrors.CodeFormat, "designation is empty")
	}
	binder := classes.BinderType(tokens[0].Raw)
	if !binder.IsValid() {
		return Parsed{}, dErrors.Newf(dErrors.CodeFormat, "designation must start with a binder type, got %q", tokens[0].Raw)
	}

	out := Parsed{Properties: Properties{BinderType: binder}}
	for _, tok := range tokens[1:] {
		if !claim(&out.Properties, tok) {
			out.Ignored = append(out.Ignored, tok.Raw)
		}
	}
	return out, nil
}

func claim(p *Properties, tok Token) bool {
	for _, m := range matchers {
		if m.match(tok) {
			return m.apply(p, tok)
		}
	}
	return false
}
