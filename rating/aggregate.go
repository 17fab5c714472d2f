package rating

import "math"

// MaxReviewLength is the longest review text accepted, in characters.
const MaxReviewLength = 500

// Round1 rounds to one fractional digit, half away from zero.
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// Recompute folds star values into the derived aggregate: the count and
// the average rounded to one decimal. Empty input yields 0, 0.
func Recompute(stars []int) (average float64, total int) {
	total = len(stars)
	if total == 0 {
		return 0, 0
	}
	sum := 0
	for _, s := range stars {
		sum += s
	}
	return Round1(float64(sum) / float64(total)), total
}

// Distribution returns, for each star value 1..5, the percentage of
// ratings carrying that value. Each percentage is rounded independently,
// so the five values may not sum to exactly 100. Empty input yields all
// zeros.
func Distribution(stars []int) map[int]int {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	if len(stars) == 0 {
		return dist
	}
	counts := map[int]int{}
	for _, s := range stars {
		counts[s]++
	}
	total := float64(len(stars))
	for star := 1; star <= 5; star++ {
		dist[star] = int(math.Round(float64(counts[star]) / total * 100))
	}
	return dist
}
