package domain

import "fmt"

// Quality is the user's grade of recall for a single review, on the SM-2
// 0..5 scale.
type Quality int

const (
	QualityBlackout Quality = 0 // no recall at all
	QualityWrong    Quality = 1 // wrong, recognized the answer
	QualityAlmost   Quality = 2 // wrong, felt familiar
	QualityHard     Quality = 3 // correct with serious effort
	QualityGood     Quality = 4 // correct after hesitation
	QualityPerfect  Quality = 5 // effortless recall
)

// IsValid reports whether q is on the 0..5 scale.
func (q Quality) IsValid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passing reports whether the review counts as a successful recall.
// Grades below 3 are lapses and reset the repetition chain.
func (q Quality) Passing() bool {
	return q >= QualityHard
}

func (q Quality) String() string {
	if q.IsValid() {
		return [...]string{"Blackout", "Wrong", "Almost", "Hard", "Good", "Perfect"}[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}
