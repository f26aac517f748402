package scoring

import "time"

// WPM calculates words-per-minute for typed input against the room's
// challenge text, given the time elapsed since the test started.
//
// A word counts as correct when, at the moment a space is typed, the
// accumulated typed word equals the reference accumulated from the
// challenge text at the same absolute character index. Indexing is by
// absolute position, not word boundary, so the reference drifts once
// any typed word differs in length from the challenge word. That is
// the scoring the clients were built against; do not word-align it.
//
// A trailing partial word after the last space is never counted.
// Returns 0 when elapsed is zero or negative (no test running).
func WPM(typed, chars string, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}

	correct := 0
	var typedWord, actualWord []byte
	for i := 0; i < len(typed); i++ {
		c := typed[i]
		if c == ' ' {
			if string(typedWord) == string(actualWord) {
				correct++
			}
			typedWord = typedWord[:0]
			actualWord = actualWord[:0]
			continue
		}
		if i < len(chars) {
			actualWord = append(actualWord, chars[i])
		}
		typedWord = append(typedWord, c)
	}

	return float64(correct) / minutes
}

// Accuracy is the percentage of typed characters that match the
// challenge text at the same index. Returns 0 for empty input rather
// than letting the division produce NaN.
func Accuracy(typed, chars string) float64 {
	if len(typed) == 0 {
		return 0
	}

	correct := 0
	for i := 0; i < len(typed); i++ {
		if i < len(chars) && chars[i] == typed[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(typed)) * 100
}
