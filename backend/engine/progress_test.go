package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name                          string
		learning, easy, medium, hard int
		want                          int
	}{
		{"everything maxed", 50, 15, 20, 15, 100},
		{"nothing done", 0, 0, 0, 0, 0},
		{"half way", 25, 7, 10, 7, 49},
		{"learning only", 30, 0, 0, 0, 30},
		{"saturates above caps", 80, 30, 40, 30, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProgress(tt.learning, tt.easy, tt.medium, tt.hard)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CalculateProgress(tt.learning, tt.easy, tt.medium, tt.hard), "recomputing must not change the result")
		})
	}
}

func TestCalculateProgressMonotonic(t *testing.T) {
	base := [4]int{10, 5, 5, 5}
	caps := [4]int{LearningCap, LeetcodeEasyCap, LeetcodeMediumCap, LeetcodeHardCap}

	for arg := range base {
		prev := -1
		for v := 0; v <= caps[arg]; v++ {
			in := base
			in[arg] = v
			got := CalculateProgress(in[0], in[1], in[2], in[3])
			if got < prev {
				t.Fatalf("argument %d: progress dropped from %d to %d at value %d", arg, prev, got, v)
			}
			prev = got
		}
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		field   TopicField
		value   int
		wantErr bool
	}{
		{FieldLearning, 0, false},
		{FieldLearning, 50, false},
		{FieldLearning, 51, true},
		{FieldLeetcodeEasy, 15, false},
		{FieldLeetcodeEasy, 16, true},
		{FieldLeetcodeMedium, 20, false},
		{FieldLeetcodeMedium, 21, true},
		{FieldLeetcodeHard, 15, false},
		{FieldLeetcodeHard, -1, true},
		{TopicField("progress"), 10, true},
	}

	for _, tt := range tests {
		err := ValidateField(tt.field, tt.value)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrInvalidInput), "%s=%d", tt.field, tt.value)
		} else {
			assert.NoError(t, err, "%s=%d", tt.field, tt.value)
		}
	}
}

func TestFieldCapSumsToHundred(t *testing.T) {
	total := 0
	for _, field := range []TopicField{FieldLearning, FieldLeetcodeEasy, FieldLeetcodeMedium, FieldLeetcodeHard} {
		limit, ok := FieldCap(field)
		assert.True(t, ok, field)
		assert.NoError(t, ValidateField(field, limit))
		assert.Error(t, ValidateField(field, limit+1))
		total += limit
	}
	assert.Equal(t, 100, total)

	_, ok := FieldCap("progress")
	assert.False(t, ok)
}
