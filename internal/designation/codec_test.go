package designation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"en13813/internal/classes"
	dErrors "en13813/pkg/domain-errors"
)

func TestGenerate(t *testing.T) {
	t.Run("cement screed with strength classes", func(t *testing.T) {
		got, err := Generate(Properties{BinderType: classes.BinderCement, Compressive: "C25", Flexural: "F4"})
		require.NoError(t, err)
		assert.Equal(t, "CT-C25-F4", got)
	})

	t.Run("full token order", func(t *testing.T) {
		got, err := Generate(Properties{
			Heated:           true,
			FireClass:        "Bfl",
			ImpactResistance: "IR4",
			BondStrength:     "B1.5",
			Wear:             &WearResistance{Method: classes.WearBCA, Class: "AR0.5"},
			Flexural:         "F10",
			Compressive:      "C30",
			BinderType:       classes.BinderSyntheticResin,
		})
		require.NoError(t, err)
		assert.Equal(t, "SR-C30-F10-AR0.5-B1.5-IR4-Bfl-H", got)
	})

	t.Run("omits non-combustible default and NPD fire classes", func(t *testing.T) {
		for _, fire := range []string{classes.FireA1fl, classes.FireNPD} {
			got, err := Generate(Properties{BinderType: classes.BinderCement, Compressive: "C20", Flexural: "F4", FireClass: fire})
			require.NoError(t, err)
			assert.Equal(t, "CT-C20-F4", got)
		}
	})

	t.Run("emits each binder-specific token for its binder only", func(t *testing.T) {
		got, err := Generate(Properties{BinderType: classes.BinderMagnesite, Compressive: "C40", Flexural: "F7", SurfaceHardness: "SH100"})
		require.NoError(t, err)
		assert.Equal(t, "MA-C40-F7-SH100", got)

		got, err = Generate(Properties{BinderType: classes.BinderMasticAsphalt, Compressive: "C5", Indentation: "IP15"})
		require.NoError(t, err)
		assert.Equal(t, "AS-C5-IP15", got)

		got, err = Generate(Properties{BinderType: classes.BinderCement, Compressive: "C25", Flexural: "F4", SurfaceHardness: "SH50"})
		require.NoError(t, err)
		assert.Equal(t, "CT-C25-F4", got)
	})

	t.Run("trims class values", func(t *testing.T) {
		p := Properties{BinderType: classes.BinderCement, Compressive: " C25", Flexural: "F4 ", FireClass: " Bfl"}
		got, err := Generate(p)
		require.NoError(t, err)
		assert.Equal(t, "CT-C25-F4-Bfl", got)

		decoded, err := Parse(got)
		require.NoError(t, err)
		assert.Equal(t, Properties{BinderType: classes.BinderCement, Compressive: "C25", Flexural: "F4", FireClass: "Bfl"}, decoded)

		got, err = New(WithStrictMode(true)).Generate(Properties{
			BinderType:  classes.BinderMasticAsphalt,
			Compressive: "C5",
			Indentation: " IP15",
			Wear:        &WearResistance{Method: classes.WearBCA, Class: "AR0.5 "},
		})
		require.NoError(t, err)
		assert.Equal(t, "AS-C5-AR0.5-IP15", got)
	})

	t.Run("heated marker is last", func(t *testing.T) {
		got, err := Generate(Properties{BinderType: classes.BinderCalciumSulphate, Compressive: "C25", Flexural: "F5", Heated: true})
		require.NoError(t, err)
		assert.Equal(t, "CA-C25-F5-H", got)
	})
}

func TestGenerate_Preconditions(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
	}{
		{"missing binder type", Properties{Compressive: "C25"}},
		{"unknown binder type", Properties{BinderType: "XX", Compressive: "C25"}},
		{"no strength class", Properties{BinderType: classes.BinderCement}},
		{"malformed compressive class", Properties{BinderType: classes.BinderCement, Compressive: "25"}},
		{"flexural value in compressive slot", Properties{BinderType: classes.BinderCement, Compressive: "F4"}},
		{"wear method without class", Properties{BinderType: classes.BinderCement, Compressive: "C25", Wear: &WearResistance{Method: classes.WearBohme}}},
		{"wear class contradicts method", Properties{BinderType: classes.BinderCement, Compressive: "C25", Wear: &WearResistance{Method: classes.WearBohme, Class: "AR1"}}},
		{"unknown wear method", Properties{BinderType: classes.BinderCement, Compressive: "C25", Wear: &WearResistance{Method: "sand", Class: "A22"}}},
		{"non-flooring fire class", Properties{BinderType: classes.BinderCement, Compressive: "C25", FireClass: "B-s1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.props)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat), "got %v", err)
		})
	}
}

func TestGenerate_StrictMode(t *testing.T) {
	strict := New(WithStrictMode(true))
	assert.True(t, strict.Strict())

	t.Run("out-of-range class", func(t *testing.T) {
		_, err := strict.Generate(Properties{BinderType: classes.BinderCement, Compressive: "C26", Flexural: "F4"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeRange))

		got, err := Generate(Properties{BinderType: classes.BinderCement, Compressive: "C26", Flexural: "F4"})
		require.NoError(t, err)
		assert.Equal(t, "CT-C26-F4", got)
	})

	t.Run("binder-specific class on wrong binder", func(t *testing.T) {
		_, err := strict.Generate(Properties{BinderType: classes.BinderCement, Compressive: "C25", Flexural: "F4", BondStrength: "B1.5"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeRange))
	})
}

func TestParse(t *testing.T) {
	t.Run("strength and wear tokens", func(t *testing.T) {
		got, err := Parse("CT-C25-F4-A22")
		require.NoError(t, err)
		assert.Equal(t, Properties{
			BinderType:  classes.BinderCement,
			Compressive: "C25",
			Flexural:    "F4",
			Wear:        &WearResistance{Method: classes.WearBohme, Class: "A22"},
		}, got)
	})

	t.Run("distinguishes wear methods by prefix", func(t *testing.T) {
		for raw, method := range map[string]classes.WearMethod{
			"A1.5":   classes.WearBohme,
			"AR0.5":  classes.WearBCA,
			"RWA100": classes.WearRollingWheel,
		} {
			got, err := Parse("CT-C25-F4-" + raw)
			require.NoError(t, err)
			require.NotNil(t, got.Wear, raw)
			assert.Equal(t, method, got.Wear.Method)
			assert.Equal(t, raw, got.Wear.Class)
		}
	})

	t.Run("fire class is not mistaken for a wear class", func(t *testing.T) {
		got, err := Parse("CT-C25-F4-A2fl")
		require.NoError(t, err)
		assert.Nil(t, got.Wear)
		assert.Equal(t, "A2fl", got.FireClass)
	})

	t.Run("ignores unrecognised tokens", func(t *testing.T) {
		parsed, err := New().ParseDetailed("CT-C25-X9-F4-ZZ-H")
		require.NoError(t, err)
		assert.Equal(t, "C25", parsed.Properties.Compressive)
		assert.Equal(t, "F4", parsed.Properties.Flexural)
		assert.True(t, parsed.Properties.Heated)
		assert.Equal(t, []string{"X9", "ZZ"}, parsed.Ignored)
	})

	t.Run("second wear token is ignored", func(t *testing.T) {
		parsed, err := New().ParseDetailed("CT-C25-F4-A22-AR1")
		require.NoError(t, err)
		assert.Equal(t, "A22", parsed.Properties.Wear.Class)
		assert.Equal(t, []string{"AR1"}, parsed.Ignored)
	})

	t.Run("malformed numbers are ignored", func(t *testing.T) {
		parsed, err := New().ParseDetailed("CT-C2.5.1-F4")
		require.NoError(t, err)
		assert.Empty(t, parsed.Properties.Compressive)
		assert.Equal(t, []string{"C2.5.1"}, parsed.Ignored)
	})

	t.Run("rejects unknown binder type", func(t *testing.T) {
		_, err := Parse("XX-C25-F4")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := Parse("   ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
	})

	t.Run("binder must be the first token", func(t *testing.T) {
		_, err := Parse("C25-CT-F4")
		require.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	for _, p := range sampleProperties() {
		name := fmt.Sprintf("%+v", p)
		encoded, err := Generate(p)
		require.NoError(t, err, name)

		decoded, err := Parse(encoded)
		require.NoError(t, err, encoded)
		assert.Equal(t, p.Normalized(), decoded, encoded)
	}
}

func TestTokenOrder(t *testing.T) {
	rank := func(tok Token) int {
		switch {
		case tok.IsClass(classes.PrefixCompressive), tok.IsClass(classes.PrefixFlexural):
			return 1
		case isWearToken(tok):
			return 2
		case isFireToken(tok):
			return 4
		case tok.IsMarker(classes.HeatedMarker):
			return 5
		default:
			return 3
		}
	}
	for _, p := range sampleProperties() {
		encoded, err := Generate(p)
		require.NoError(t, err)
		tokens := Tokenize(encoded)
		assert.Equal(t, string(p.BinderType), tokens[0].Raw)
		last := 0
		for _, tok := range tokens[1:] {
			r := rank(tok)
			assert.GreaterOrEqual(t, r, last, "token %q out of order in %s", tok.Raw, encoded)
			last = r
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize(" CT--AR0.5-A2fl-H ")
	require.Len(t, tokens, 4)
	assert.Equal(t, Token{Raw: "CT", Prefix: "CT"}, tokens[0])
	assert.Equal(t, Token{Raw: "AR0.5", Prefix: "AR", Number: "0.5"}, tokens[1])
	assert.Equal(t, Token{Raw: "A2fl", Prefix: "A", Number: "2", Suffix: "fl"}, tokens[2])
	assert.True(t, tokens[3].IsMarker("H"))
}

// sampleProperties builds a deterministic cross product of valid inputs.
func sampleProperties() []Properties {
	wears := []*WearResistance{
		nil,
		{Method: classes.WearBohme, Class: "A12"},
		{Method: classes.WearBCA, Class: "AR2"},
		{Method: classes.WearRollingWheel, Class: "RWA20"},
		{Method: classes.WearBohme, Class: "A1.5"},
		{Method: classes.WearBCA, Class: "AR0.5"},
	}
	fires := []string{"", classes.FireA1fl, "A2fl", "Bfl", "Cfl", "Ffl"}
	var out []Properties
	for _, binder := range classes.BinderTypes() {
		for i, compressive := range []string{"", "C20", "C35"} {
			flexural := []string{"F4", "", "F6"}[i]
			for _, wear := range wears {
				for _, fire := range fires {
					for _, heated := range []bool{false, true} {
						p := Properties{
							BinderType:  binder,
							Compressive: compressive,
							Flexural:    flexural,
							Wear:        wear,
							FireClass:   fire,
							Heated:      heated,
						}
						switch binder {
						case classes.BinderMagnesite:
							p.SurfaceHardness = "SH70"
						case classes.BinderSyntheticResin:
							p.BondStrength = "B2.0"
							p.ImpactResistance = "IR10"
						case classes.BinderMasticAsphalt:
							p.Indentation = "IC40"
							if heated {
								p.Indentation = "IP15"
							}
						}
						out = append(out, p)
					}
				}
			}
		}
	}
	return out
}

func TestSampleProperties_CoverAllBinders(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range sampleProperties() {
		seen[string(p.BinderType)] = true
	}
	assert.Len(t, seen, 5)
}
