package importer

import (
	"strings"

	"github.com/nasiloldu/backend/utils"
)

// Category slugs of the fixed death-cause taxonomy, matching the seeded rows.
const (
	CategoryIllness       = "hastalik"
	CategoryAccident      = "kaza"
	CategorySuicide       = "intihar"
	CategoryAssassination = "suikast"
)

// keyword lists are matched against the folded cause text; Turkish and
// English labels both occur because the SPARQL label service falls back to
// English.
var causeKeywords = []struct {
	category string
	words    []string
}{
	{CategoryAssassination, []string{
		"suikast", "assassination", "cinayet", "murder", "homicide",
		"vuruldu", "ballistic trauma", "gunshot", "stabbing", "infaz", "execution",
	}},
	{CategorySuicide, []string{
		"intihar", "suicide", "kendini as", "hanging", "overdose",
	}},
	{CategoryAccident, []string{
		"kaza", "accident", "crash", "trafik", "collision", "dusme", "fall",
		"bogulma", "drowning", "yangin", "fire", "zehirlenme", "poisoning",
		"plane", "ucak", "helikopter", "helicopter", "deprem", "earthquake",
	}},
}

// ClassifyCause maps a free-text cause of death onto one of the four fixed
// category slugs. Unknown or empty text defaults to illness, by far the most
// common cause in the source data.
func ClassifyCause(causeText string) string {
	folded := utils.Fold(causeText)
	if folded == "" {
		return CategoryIllness
	}
	for _, group := range causeKeywords {
		for _, word := range group.words {
			if strings.Contains(folded, word) {
				return group.category
			}
		}
	}
	return CategoryIllness
}
