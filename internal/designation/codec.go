package designation

import (
	"strings"

	"en13813/internal/classes"
	dErrors "en13813/pkg/domain-errors"
)

// Codec generates and parses designations. A Codec is immutable and safe for
// concurrent use.
type Codec struct {
	strict bool
}

// Option configures a Codec.
type Option func(*Codec)

// WithStrictMode escalates range warnings (well-formed classes outside the
// enumerated set, binder-specific classes on the wrong binder) to errors.
func WithStrictMode(strict bool) Option {
	return func(c *Codec) {
		c.strict = strict
	}
}

// New constructs a Codec.
func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strict reports whether the codec runs in strict mode.
func (c *Codec) Strict() bool {
	return c.strict
}

var defaultCodec = New()

// Generate encodes p with the default (lenient) codec.
func Generate(p Properties) (string, error) {
	return defaultCodec.Generate(p)
}

// Parse decodes s with the default codec.
func Parse(s string) (Properties, error) {
	return defaultCodec.Parse(s)
}

// Validate checks s with the default codec.
func Validate(s string) Result {
	return defaultCodec.Validate(s)
}

// Generate encodes p. Tokens are always emitted in the order binder type,
// compressive, flexural, wear, binder-specific (SH, B, IR, IC/IP), fire
// class, heated marker, whatever order the fields were populated in.
//
// It returns a CodeFormat error when the binder type is missing or unknown,
// when neither strength class is present, or when a class value does not
// match its grammar. Binder-specific classes on a non-matching binder type are
// left out; in strict mode they, and out-of-range classes, are CodeRange errors.
func (c *Codec) Generate(p Properties) (string, error) {
	if p.BinderType == "" {
		return "", dErrors.New(dErrors.CodeFormat, "binder type is required")
	}
	if !p.BinderType.IsValid() {
		return "", dErrors.Newf(dErrors.CodeFormat, "unknown binder type %q", p.BinderType)
	}
	if !p.HasStrengthClass() {
		return "", dErrors.New(dErrors.CodeFormat, "a compressive or flexural class is required")
	}

	b := &builder{codec: c, tokens: []string{string(p.BinderType)}}
	b.class(classes.PropertyCompressive, p.Compressive, classes.PrefixCompressive)
	b.class(classes.PropertyFlexural, p.Flexural, classes.PrefixFlexural)
	if p.Wear != nil {
		b.wear(*p.Wear)
	}

	b.binderSpecific(p.BinderType, classes.PropertySurfaceHardness, p.SurfaceHardness, classes.PrefixSurfaceHardness)
	b.binderSpecific(p.BinderType, classes.PropertyBondStrength, p.BondStrength, classes.PrefixBondStrength)
	b.binderSpecific(p.BinderType, classes.PropertyImpactResistance, p.ImpactResistance, classes.PrefixImpactResistance)
	if p.Indentation != "" {
		prefix := classes.PrefixIndentationCube
		if strings.HasPrefix(strings.TrimSpace(p.Indentation), classes.PrefixIndentationPlate) {
			prefix = classes.PrefixIndentationPlate
		}
		b.binderSpecific(p.BinderType, classes.PropertyIndentation, p.Indentation, prefix)
	}

	if classes.DeclaresFireClass(p.FireClass) {
		b.fire(p.FireClass)
	}
	if p.Heated {
		b.tokens = append(b.tokens, classes.HeatedMarker)
	}

	if b.err != nil {
		return "", b.err
	}
	return strings.Join(b.tokens, Separator), nil
}

// builder accumulates tokens and keeps the first error.
type builder struct {
	codec  *Codec
	tokens []string
	err    error
}

func (b *builder) class(prop classes.Property, value, prefix string) {
	value = strings.TrimSpace(value)
	if b.err != nil || value == "" {
		return
	}
	if !classToken(value).IsClass(prefix) {
		b.err = dErrors.Newf(dErrors.CodeFormat, "%s class %q does not match %s<n>", prop, value, prefix)
		return
	}
	if b.codec.strict && !classes.Contains(prop, value) {
		b.err = dErrors.Newf(dErrors.CodeRange, "%s class %q is not an enumerated class", prop, value)
		return
	}
	b.tokens = append(b.tokens, value)
}

func (b *builder) wear(w WearResistance) {
	if b.err != nil {
		return
	}
	if !w.Method.IsValid() {
		b.err = dErrors.Newf(dErrors.CodeFormat, "unknown wear-resistance method %q", w.Method)
		return
	}
	if strings.TrimSpace(w.Class) == "" {
		b.err = dErrors.New(dErrors.CodeFormat, "wear-resistance method set without a class")
		return
	}
	b.class(w.Method.Property(), w.Class, w.Method.Prefix())
}

func (b *builder) binderSpecific(binder classes.BinderType, prop classes.Property, value, prefix string) {
	if b.err != nil || strings.TrimSpace(value) == "" {
		return
	}
	if !appliesTo(prop, binder) {
		if b.codec.strict {
			owner, _ := classes.ApplicableBinder(prop)
			b.err = dErrors.Newf(dErrors.CodeRange, "%s applies to %s screeds only", prop, owner)
		}
		return
	}
	b.class(prop, value, prefix)
}

func (b *builder) fire(value string) {
	if b.err != nil {
		return
	}
	value = strings.TrimSpace(value)
	if !isFireToken(classToken(value)) {
		b.err = dErrors.Newf(dErrors.CodeFormat, "fire class %q is not a flooring reaction-to-fire class", value)
		return
	}
	if b.codec.strict && !classes.Contains(classes.PropertyFire, value) {
		b.err = dErrors.Newf(dErrors.CodeRange, "fire class %q is not an enumerated class", value)
		return
	}
	b.tokens = append(b.tokens, value)
}

// isFireToken matches A1fl, A2fl and Bfl..Ffl.
func isFireToken(t Token) bool {
	if t.Suffix != "fl" {
		return false
	}
	switch t.Prefix {
	case "A":
		return t.Number == "1" || t.Number == "2"
	case "B", "C", "D", "E", "F":
		return t.Number == ""
	}
	return false
}
