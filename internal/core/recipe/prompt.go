package recipe

import (
	"fmt"
	"strings"
)

const promptTemplate = `Create a %s level food recipe blog for "%s".

Include:
- Catchy title
- Short introduction
- Serves, prep time, cook time
- Ingredients list
- Numbered step-by-step cooking instructions
- Tips & variations
- Conclusion

Tone: friendly, professional.
Length: about %d words.
`

// BuildPrompt 由請求產生固定模板的生成指令
func BuildPrompt(req RecipeRequest) string {
	return fmt.Sprintf(promptTemplate,
		strings.ToLower(string(req.Difficulty)),
		req.DishName,
		req.TargetWordCount,
	)
}
