package fuzzy

// maxPatternRunes mirrors the machine-word limit of bitap matchers: longer
// queries are scored in chunks.
const maxPatternRunes = 32

// fieldScore scores pattern against text, both already lower-cased. The
// score is errors/len(pattern) for the best approximate occurrence anywhere
// in text (location is ignored). Long patterns are split into chunks whose
// scores are averaged; a chunk that does not match within threshold counts
// as 1. matched is true when at least one chunk matched.
func fieldScore(pattern, text []rune, threshold float64) (score float64, matched bool) {
	if len(pattern) <= maxPatternRunes {
		s := chunkScore(pattern, text)
		if s <= threshold {
			return s, true
		}
		return 1, false
	}

	var total float64
	chunks := 0
	for start := 0; start < len(pattern); start += maxPatternRunes {
		end := min(start+maxPatternRunes, len(pattern))
		s := chunkScore(pattern[start:end], text)
		if s <= threshold {
			matched = true
		} else {
			s = 1
		}
		total += s
		chunks++
	}

	return total / float64(chunks), matched
}

func chunkScore(pattern, text []rune) float64 {
	if len(pattern) == 0 {
		return 1
	}
	return float64(substringDistance(pattern, text)) / float64(len(pattern))
}

// substringDistance is the smallest edit distance between pattern and any
// substring of text (Sellers). It is Levenshtein with a free start position
// in text, kept to two rows.
func substringDistance(pattern, text []rune) int {
	prev := make([]int, len(text)+1)
	curr := make([]int, len(text)+1)

	for i := 1; i <= len(pattern); i++ {
		curr[0] = i
		for j := 1; j <= len(text); j++ {
			cost := 0
			if pattern[i-1] != text[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}
		prev, curr = curr, prev
	}

	best := len(pattern)
	for _, d := range prev {
		best = min(best, d)
	}
	return best
}
