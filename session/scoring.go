package session

import "math"

// DefaultPassingScore applies when a quiz has no passing score of its own.
const DefaultPassingScore = 70

// CorrectCount returns how many of the answers were correct.
func CorrectCount(answers []Answer) int {
	count := 0
	for _, a := range answers {
		if a.IsCorrect {
			count++
		}
	}
	return count
}

// Score returns the percentage score round(100 * correct / total), using
// round-half-up. A quiz with zero questions scores 0 rather than failing.
func Score(total int, answers []Answer) int {
	if total <= 0 {
		return 0
	}
	correct := CorrectCount(answers)
	return int(math.Floor(float64(correct)/float64(total)*100 + 0.5))
}

// IsPassed reports whether score meets the quiz's passing score, defaulting
// to DefaultPassingScore when the quiz has none.
func IsPassed(score int, passingScore *int) bool {
	threshold := DefaultPassingScore
	if passingScore != nil {
		threshold = *passingScore
	}
	return score >= threshold
}
