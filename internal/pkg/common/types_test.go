package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	for _, in := range []string{"easy", "Easy", " EASY "} {
		d, err := ParseDifficulty(in)
		require.NoError(t, err)
		assert.Equal(t, DifficultyEasy, d)
	}

	_, err := ParseDifficulty("Expert")
	require.Error(t, err)
	assert.True(t, IsInvalidRequestError(err))
}

func TestNewRecipeRequest(t *testing.T) {
	req, err := NewRecipeRequest("  Paneer Butter Masala ", "Medium", 500)
	require.NoError(t, err)
	assert.Equal(t, "Paneer Butter Masala", req.DishName)
	assert.Equal(t, DifficultyMedium, req.Difficulty)
	assert.Equal(t, 500, req.TargetWordCount)
	assert.Equal(t, "Paneer Butter Masala", req.Title())
}

func TestRecipeRequestValidate(t *testing.T) {
	tests := []struct {
		name  string
		req   RecipeRequest
		field string
	}{
		{"empty dish", RecipeRequest{DishName: "  ", Difficulty: DifficultyEasy, TargetWordCount: 500}, "dish_name"},
		{"bad difficulty", RecipeRequest{DishName: "Dal", Difficulty: "Expert", TargetWordCount: 500}, "difficulty"},
		{"too short", RecipeRequest{DishName: "Dal", Difficulty: DifficultyHard, TargetWordCount: 199}, "word_count"},
		{"too long", RecipeRequest{DishName: "Dal", Difficulty: DifficultyHard, TargetWordCount: 1001}, "word_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			var invalid *InvalidRequestError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}

	assert.NoError(t, RecipeRequest{DishName: "Dal", Difficulty: DifficultyHard, TargetWordCount: 200}.Validate())
	assert.NoError(t, RecipeRequest{DishName: "Dal", Difficulty: DifficultyHard, TargetWordCount: 1000}.Validate())
}

func TestDifficultyPresentation(t *testing.T) {
	assert.Equal(t, "#10b981", DifficultyEasy.Color())
	assert.Equal(t, "#ef4444", DifficultyHard.Color())
	assert.Equal(t, "🔥", DifficultyMedium.Icon())
	assert.Empty(t, Difficulty("Other").Color())
}

func TestCustomErrorResponse(t *testing.T) {
	err := ErrAIServiceError.Wrap(assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)

	resp := err.Response(false)
	assert.Equal(t, ErrCodeAIService, resp.Code)
	assert.Empty(t, resp.Details)

	resp = err.Response(true)
	assert.Equal(t, assert.AnError.Error(), resp.Details)
}
