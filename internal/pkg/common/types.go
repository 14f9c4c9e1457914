package common

import (
	"strings"
	"time"
)

// Difficulty 食譜難度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// 字數範圍與預設值
const (
	MinWordCount     = 200
	MaxWordCount     = 1000
	DefaultWordCount = 500
)

// Difficulties 依顯示順序列出所有難度
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty 解析難度字串（不分大小寫）
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", NewInvalidRequestError("difficulty", "must be one of Easy, Medium, Hard")
}

// Valid 是否為三個合法難度之一
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Color 難度對應的標示顏色
func (d Difficulty) Color() string {
	switch d {
	case DifficultyEasy:
		return "#10b981"
	case DifficultyMedium:
		return "#f59e0b"
	case DifficultyHard:
		return "#ef4444"
	}
	return ""
}

// Icon 難度對應的圖示
func (d Difficulty) Icon() string {
	switch d {
	case DifficultyEasy:
		return "🌱"
	case DifficultyMedium:
		return "🔥"
	case DifficultyHard:
		return "👨‍🍳"
	}
	return ""
}

// RecipeRequest 生成食譜的輸入參數，建立後不可變更
type RecipeRequest struct {
	DishName        string     `json:"dish_name"`
	Difficulty      Difficulty `json:"difficulty"`
	TargetWordCount int        `json:"word_count"`
}

// NewRecipeRequest 在輸入邊界建立並驗證請求
func NewRecipeRequest(dishName, difficulty string, wordCount int) (RecipeRequest, error) {
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return RecipeRequest{}, err
	}
	req := RecipeRequest{
		DishName:        strings.TrimSpace(dishName),
		Difficulty:      d,
		TargetWordCount: wordCount,
	}
	if err := req.Validate(); err != nil {
		return RecipeRequest{}, err
	}
	return req, nil
}

// Validate 檢查請求前置條件
func (r RecipeRequest) Validate() error {
	if strings.TrimSpace(r.DishName) == "" {
		return NewInvalidRequestError("dish_name", "must not be empty")
	}
	if !r.Difficulty.Valid() {
		return NewInvalidRequestError("difficulty", "must be one of Easy, Medium, Hard")
	}
	if r.TargetWordCount < MinWordCount || r.TargetWordCount > MaxWordCount {
		return NewInvalidRequestError("word_count", "must be between 200 and 1000")
	}
	return nil
}

// Title 由菜名推導的標題
func (r RecipeRequest) Title() string {
	return strings.TrimSpace(r.DishName)
}

// GeneratedRecipe 一次成功生成的結果，生成後唯讀
type GeneratedRecipe struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	BodyText        string     `json:"body_text"`
	Difficulty      Difficulty `json:"difficulty"`
	TargetWordCount int        `json:"word_count"`
	Model           string     `json:"model"`
	CacheHit        bool       `json:"cache_hit"`
	CreatedAt       time.Time  `json:"created_at"`
}
