package movie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Color
	}{
		{
			name:     "battle maps to red",
			text:     "The final battle begins",
			expected: ColorRed,
		},
		{
			name:     "love maps to pink",
			text:     "A love letter",
			expected: ColorPink,
		},
		{
			name:     "space maps to black",
			text:     "Journey through space",
			expected: ColorBlack,
		},
		{
			name:     "no keyword defaults to blue",
			text:     "A quiet afternoon",
			expected: ColorBlue,
		},
		{
			name:     "empty text defaults to blue",
			text:     "",
			expected: ColorBlue,
		},
		{
			name:     "matching is case-insensitive",
			text:     "BATTLE royale",
			expected: ColorRed,
		},
		{
			name:     "battle wins over space",
			text:     "A battle in space",
			expected: ColorRed,
		},
		{
			name:     "love wins over space",
			text:     "Love in outer SPACE",
			expected: ColorPink,
		},
		{
			name:     "battle wins over love",
			text:     "love and battle",
			expected: ColorRed,
		},
		{
			name:     "keyword inside a longer word",
			text:     "a lovely day",
			expected: ColorPink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.text))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Spacecraft Battle"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}
