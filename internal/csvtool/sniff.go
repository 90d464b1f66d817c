package csvtool

import "bytes"

// delimiter candidates, comma first as the tie-breaking default.
var candidates = []byte{',', ';', '\t', '|'}

// SniffDelimiter guesses the tabular dialect of sample by counting candidate
// delimiters on the first line outside quoted regions. Defaults to comma.
func SniffDelimiter(sample []byte) rune {
	line := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}

	best := byte(',')
	bestCount := 0
	for _, cand := range candidates {
		count := 0
		inQuotes := false
		for _, b := range line {
			switch {
			case b == '"':
				inQuotes = !inQuotes
			case b == cand && !inQuotes:
				count++
			}
		}
		if count > bestCount {
			best = cand
			bestCount = count
		}
	}
	return rune(best)
}
