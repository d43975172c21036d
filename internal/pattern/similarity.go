package pattern

// Similarity computes a Ratcliff/Obershelp ratio between two strings:
// recursively find the longest common substring, count its length, and
// repeat on the pieces to its left and right. The ratio is 2*M/T where M is
// the total matched length and T the combined length of both inputs. The
// result is in [0,1]; the 0.5 policy threshold depends on this exact
// formula, so it is pinned here rather than taken from a library.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matched := matchingRunes(ra, rb, 0, len(ra), 0, len(rb))
	return 2 * float64(matched) / float64(total)
}

func matchingRunes(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return matchingRunes(a, b, alo, i, blo, j) +
		size +
		matchingRunes(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch returns the earliest longest matching block between
// a[alo:ahi] and b[blo:bhi].
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	b2j := make(map[rune][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
