package handlers

import (
	"net/http"

	recipeHandler "recipe-master/internal/api/handlers/recipe"
	recipeService "recipe-master/internal/core/recipe"
	"recipe-master/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler 生成指令相關處理器
type AIHandler struct {
	recipeService *recipeService.RecipeService
	model         string
	debug         bool
}

// NewAIHandler 創建 AI 處理器
func NewAIHandler(recipeService *recipeService.RecipeService, model string, debug bool) *AIHandler {
	return &AIHandler{
		recipeService: recipeService,
		model:         model,
		debug:         debug,
	}
}

// PreviewPrompt 只產生送給模型的 prompt，不呼叫模型
func (h *AIHandler) PreviewPrompt(c *gin.Context) {
	var req recipeHandler.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	recipeReq, err := req.ToRecipeRequest()
	if err != nil {
		h.writeError(c, err)
		return
	}

	prompt, err := h.recipeService.PreviewPrompt(recipeReq)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prompt":     prompt,
		"model":      h.model,
		"difficulty": recipeReq.Difficulty,
		"word_count": recipeReq.TargetWordCount,
	})
}

// writeError 與食譜路由使用相同的錯誤對應
func (h *AIHandler) writeError(c *gin.Context, err error) {
	custom := recipeHandler.ToCustomError(err)
	common.LogWarn("Prompt preview rejected",
		zap.Error(err),
		zap.String("code", custom.Code),
	)
	c.AbortWithStatusJSON(custom.Status, custom.Response(h.debug))
}
