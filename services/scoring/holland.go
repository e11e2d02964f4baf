package scoring

import (
	"sort"
	"strings"
)

// RIASECOrder is the canonical Holland ordering, also used to break score ties
var RIASECOrder = []string{"realistic", "investigative", "artistic", "social", "enterprising", "conventional"}

var letterToCategory = map[byte]string{
	'R': "realistic",
	'I': "investigative",
	'A': "artistic",
	'S': "social",
	'E': "enterprising",
	'C': "conventional",
}

// interest weights by position in a career's Holland code
var codeWeights = []float64{3, 2, 1}

// CategoryForLetter returns the RIASEC category for a Holland letter, or "" if unknown.
func CategoryForLetter(letter byte) string {
	return letterToCategory[upper(letter)]
}

// HollandCode returns the top three RIASEC letters of the given interest scores.
func HollandCode(scores map[string]float64) string {
	type entry struct {
		letter byte
		score  float64
		order  int
	}
	entries := make([]entry, 0, len(RIASECOrder))
	for i, cat := range RIASECOrder {
		entries = append(entries, entry{letter: strings.ToUpper(cat)[0], score: scores[cat], order: i})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].order < entries[j].order
	})

	code := make([]byte, 0, 3)
	for _, e := range entries[:3] {
		code = append(code, e.letter)
	}
	return string(code)
}

// InterestFit is the weighted mean of the user's scores for the letters of a career's
// Holland code, the first letter weighing 3, the second 2 and the third 1. Unknown letters
// are skipped; a code with no known letters fits 0.
func InterestFit(scores map[string]float64, careerCode string) float64 {
	var sum, weights float64
	pos := 0
	for i := 0; i < len(careerCode) && pos < len(codeWeights); i++ {
		cat := CategoryForLetter(careerCode[i])
		if cat == "" {
			continue
		}
		w := codeWeights[pos]
		sum += w * scores[cat]
		weights += w
		pos++
	}
	if weights == 0 {
		return 0
	}
	return round2(clamp(sum/weights, 0, 100))
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
