package utils

// RoundHalfUp divides num by den and rounds halves away from zero for
// non-negative inputs, matching how averages are displayed (4.5 -> 5).
func RoundHalfUp(num, den int64) int64 {
	if den == 0 {
		return 0
	}
	if num < 0 {
		return -RoundHalfUp(-num, den)
	}
	return (2*num + den) / (2 * den)
}

// AverageScore returns the mean of values rounded half-up, and false when
// there are no values.
func AverageScore(values []int32) (int32, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return int32(RoundHalfUp(sum, int64(len(values)))), true
}

// CompletionPercent is answered/visible as a 0-100 integer rounded half-up.
// It is 100 whenever every required question is answered, including the
// empty form.
func CompletionPercent(answered, visible int, allRequiredAnswered bool) int32 {
	if allRequiredAnswered || visible == 0 {
		return 100
	}
	if answered > visible {
		answered = visible
	}
	return int32(RoundHalfUp(int64(answered)*100, int64(visible)))
}
