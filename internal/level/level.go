// Package level maps accumulated practice hours to a discrete mastery level.
// The mapping is a static closed-open interval table: [0,20) New, [20,100)
// Novice, [100,1000) Advanced Beginner, [1000,4000) Competent, [4000,8000)
// Proficient, [8000,10000) Expert, [10000,inf) Mastery. Exactly 20 hours is
// Novice.
package level

// Level is a discrete proficiency label derived from accumulated hours.
type Level string

const (
	New              Level = "New"
	Novice           Level = "Novice"
	AdvancedBeginner Level = "Advanced Beginner"
	Competent        Level = "Competent"
	Proficient       Level = "Proficient"
	Expert           Level = "Expert"
	Mastery          Level = "Mastery"
)

// MaxHours is the top of the tracked scale. Accumulation past this point is
// clamped by callers; the classification itself is total for any h >= 0.
const MaxHours = 10000.0

// threshold is the lower bound (inclusive) at which a level begins.
type threshold struct {
	floor float64
	label Level
}

// Descending order so the first matching floor wins.
var thresholds = []threshold{
	{10000, Mastery},
	{8000, Expert},
	{4000, Proficient},
	{1000, Competent},
	{100, AdvancedBeginner},
	{20, Novice},
	{0, New},
}

// ForHours classifies accumulated hours. Total for every input: negative
// values classify as New.
func ForHours(h float64) Level {
	for _, t := range thresholds {
		if h >= t.floor {
			return t.label
		}
	}
	return New
}

// Rank returns the ordinal position of a level, New being 0. Unknown labels
// rank below New so a corrupted row sorts first rather than panicking.
func (l Level) Rank() int {
	for i, t := range thresholds {
		if t.label == l {
			return len(thresholds) - 1 - i
		}
	}
	return -1
}
