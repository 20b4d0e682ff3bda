package engine

import (
	"fmt"
	"math"
)

type TopicField string

const (
	FieldLearning       TopicField = "learning"
	FieldLeetcodeEasy   TopicField = "leetcodeEasy"
	FieldLeetcodeMedium TopicField = "leetcodeMedium"
	FieldLeetcodeHard   TopicField = "leetcodeHard"
)

// Caps double as the weight of each sub-metric; they sum to 100.
const (
	LearningCap       = 50
	LeetcodeEasyCap   = 15
	LeetcodeMediumCap = 20
	LeetcodeHardCap   = 15
)

var fieldCaps = map[TopicField]int{
	FieldLearning:       LearningCap,
	FieldLeetcodeEasy:   LeetcodeEasyCap,
	FieldLeetcodeMedium: LeetcodeMediumCap,
	FieldLeetcodeHard:   LeetcodeHardCap,
}

// CalculateProgress returns the completion percentage of a topic.
func CalculateProgress(learning, easy, medium, hard int) int {
	total := weighted(learning, LearningCap) +
		weighted(easy, LeetcodeEasyCap) +
		weighted(medium, LeetcodeMediumCap) +
		weighted(hard, LeetcodeHardCap)
	return int(math.Round(total))
}

func weighted(value, limit int) float64 {
	return float64(min(value, limit)) / float64(limit) * float64(limit)
}

// FieldCap reports the upper bound of a field.
func FieldCap(field TopicField) (int, bool) {
	limit, ok := fieldCaps[field]
	return limit, ok
}

// ValidateField rejects unknown fields and values outside [0, cap]. Values are never clamped.
func ValidateField(field TopicField, value int) error {
	limit, ok := FieldCap(field)
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
	}
	if value < 0 || value > limit {
		return fmt.Errorf("%w: %s must be between 0 and %d, got %d", ErrInvalidInput, field, limit, value)
	}
	return nil
}
