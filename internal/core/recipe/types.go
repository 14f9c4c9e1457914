package recipe

import (
	"recipe-master/internal/pkg/common"
)

// RecipeRequest 生成食譜的請求
type RecipeRequest = common.RecipeRequest

// GeneratedRecipe 生成的食譜
type GeneratedRecipe = common.GeneratedRecipe

// Difficulty 食譜難度
type Difficulty = common.Difficulty
