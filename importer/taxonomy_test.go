package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCause(t *testing.T) {
	cases := []struct {
		cause string
		want  string
	}{
		{"", CategoryIllness},
		{"kalp yetmezliği", CategoryIllness},
		{"pancreatic cancer", CategoryIllness},
		{"bilinmeyen bir şey", CategoryIllness},

		{"trafik kazası", CategoryAccident},
		{"Traffic Accident", CategoryAccident},
		{"uçak kazası", CategoryAccident},
		{"drowning", CategoryAccident},
		{"karbonmonoksit zehirlenmesi", CategoryAccident},

		{"intihar", CategorySuicide},
		{"suicide by hanging", CategorySuicide},
		{"drug overdose", CategorySuicide},

		{"suikast", CategoryAssassination},
		{"assassination", CategoryAssassination},
		{"ballistic trauma", CategoryAssassination},
		{"cinayet kurbanı", CategoryAssassination},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyCause(tc.cause), "cause %q", tc.cause)
	}
}

func TestClassifyCauseFoldsDiacriticsAndCase(t *testing.T) {
	// matching happens on the folded text, so casing and Turkish
	// diacritics never change the outcome
	assert.Equal(t, ClassifyCause("trafik kazası"), ClassifyCause("TRAFİK KAZASI"))
	assert.Equal(t, CategoryAccident, ClassifyCause("DÜŞME"))
	assert.Equal(t, CategoryAccident, ClassifyCause("boğulma"))
}
