package recipe

import (
	"strings"
	"testing"

	"recipe-master/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	req, err := common.NewRecipeRequest("Paneer Butter Masala", "Easy", 500)
	require.NoError(t, err)

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, `easy level food recipe blog for "Paneer Butter Masala"`)
	assert.Contains(t, prompt, "about 500 words")
	assert.Contains(t, prompt, "Tone: friendly, professional.")
	for _, section := range []string{
		"Catchy title",
		"Short introduction",
		"Serves, prep time, cook time",
		"Ingredients list",
		"Numbered step-by-step cooking instructions",
		"Tips & variations",
		"Conclusion",
	} {
		assert.Contains(t, prompt, section)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	req := RecipeRequest{DishName: "Chole Bhature", Difficulty: common.DifficultyHard, TargetWordCount: 1000}
	assert.Equal(t, BuildPrompt(req), BuildPrompt(req))
	assert.True(t, strings.HasPrefix(BuildPrompt(req), "Create a hard level"))
	assert.Contains(t, BuildPrompt(req), "about 1000 words")
}
