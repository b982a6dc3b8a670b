package symspell

import (
	"github.com/hbollon/go-edlib"
)

// distanceBounded returns the optimal string alignment distance between a
// and b, or -1 when it exceeds maxDistance.
func distanceBounded(a, b []rune, maxDistance int) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	// common prefix and suffix do not change the distance
	for len(a) > 0 && a[0] == b[0] {
		a, b = a[1:], b[1:]
	}
	for len(a) > 0 && a[len(a)-1] == b[len(b)-1] {
		a, b = a[:len(a)-1], b[:len(b)-1]
	}
	if len(b)-len(a) > maxDistance {
		return -1
	}
	if len(a) == 0 {
		return len(b)
	}

	n := len(b)
	prev2 := make([]int, n+1)
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d = min(d, prev2[j-2]+1)
			}
			curr[j] = d
			rowMin = min(rowMin, d)
		}
		// row minima never decrease
		if rowMin > maxDistance {
			return -1
		}
		prev2, prev, curr = prev, curr, prev2
	}
	if d := prev[n]; d <= maxDistance {
		return d
	}
	return -1
}

// Distance is the bounded rune distance between two strings, -1 when it
// exceeds maxDistance.
func Distance(a, b string, maxDistance int) int {
	return distanceBounded([]rune(a), []rune(b), maxDistance)
}

// phraseDistance is the unbounded distance used to score whole lines.
func phraseDistance(a, b string) int {
	return edlib.OSADamerauLevenshteinDistance(a, b)
}
