package recipe

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"

	"recipe-master/internal/core/export"
	recipeService "recipe-master/internal/core/recipe"
	"recipe-master/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 生成食譜請求
type GenerateRequest struct {
	DishName   string `json:"dish_name"`            // 菜名
	Difficulty string `json:"difficulty,omitempty"` // Easy、Medium、Hard，預設 Easy
	WordCount  int    `json:"word_count,omitempty"` // 200~1000，預設 500
}

// ToRecipeRequest 套用預設值並驗證
func (r GenerateRequest) ToRecipeRequest() (common.RecipeRequest, error) {
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = string(common.DifficultyEasy)
	}
	wordCount := r.WordCount
	if wordCount == 0 {
		wordCount = common.DefaultWordCount
	}
	return common.NewRecipeRequest(r.DishName, difficulty, wordCount)
}

// RecipeResponse 食譜與難度顯示資訊
type RecipeResponse struct {
	*common.GeneratedRecipe
	DifficultyColor string `json:"difficulty_color"`
	DifficultyIcon  string `json:"difficulty_icon"`
}

// ExportStatus 單一格式的匯出狀態
type ExportStatus struct {
	Format      export.Format         `json:"format"`
	Filename    string                `json:"filename,omitempty"`
	MIMEType    string                `json:"mime_type,omitempty"`
	Size        int                   `json:"size"`
	DownloadURL string                `json:"download_url,omitempty"`
	Data        string                `json:"data,omitempty"` // base64
	Error       *common.ErrorResponse `json:"error,omitempty"`
}

// GenerateResponse 生成結果
type GenerateResponse struct {
	Recipe  RecipeResponse `json:"recipe"`
	Exports []ExportStatus `json:"exports"`
}

// ExportRequest 匯出任意內文
type ExportRequest struct {
	Title    string `json:"title"`
	BodyText string `json:"body_text"`
}

// ExportResponse 匯出結果，檔案內容以 base64 回傳
type ExportResponse struct {
	Exports []ExportStatus `json:"exports"`
}

// Handler 食譜處理程序
type Handler struct {
	recipeService *recipeService.RecipeService
	debug         bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(recipeService *recipeService.RecipeService, debug bool) *Handler {
	return &Handler{
		recipeService: recipeService,
		debug:         debug,
	}
}

func newRecipeResponse(r *common.GeneratedRecipe) RecipeResponse {
	return RecipeResponse{
		GeneratedRecipe: r,
		DifficultyColor: r.Difficulty.Color(),
		DifficultyIcon:  r.Difficulty.Icon(),
	}
}

func downloadURL(id string, f export.Format) string {
	return fmt.Sprintf("/api/v1/recipe/%s/export/%s", id, f)
}

// exportStatuses 轉換匯出結果；withData 時附上 base64 內容
func exportStatuses(bundle *export.Bundle, id string, withData bool) []ExportStatus {
	statuses := make([]ExportStatus, 0, len(bundle.Results))
	for _, r := range bundle.Results {
		status := ExportStatus{Format: r.Format, Error: artifactError(r.Err)}
		if a := r.Artifact; a != nil {
			status.Filename = a.Filename
			status.MIMEType = a.MIMEType
			status.Size = len(a.Data)
			if id != "" {
				status.DownloadURL = downloadURL(id, r.Format)
			}
			if withData {
				status.Data = base64.StdEncoding.EncodeToString(a.Data)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// HandleGenerate 生成食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := getRequestID(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, requestID, common.ErrInvalidRequest.Wrap(err))
		return
	}

	recipeReq, err := req.ToRecipeRequest()
	if err != nil {
		h.writeError(c, requestID, err)
		return
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("dish_name", recipeReq.DishName),
		zap.String("difficulty", string(recipeReq.Difficulty)),
		zap.Int("word_count", recipeReq.TargetWordCount),
	)

	result, bundle, err := h.recipeService.GenerateRecipe(c.Request.Context(), recipeReq)
	if err != nil {
		h.writeError(c, requestID, err)
		return
	}

	if failed := bundle.Failed(); len(failed) > 0 {
		common.LogWarn("部分匯出失敗",
			zap.String("request_id", requestID),
			zap.String("id", result.ID),
			zap.Any("formats", failed),
		)
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Recipe:  newRecipeResponse(result),
		Exports: exportStatuses(bundle, result.ID, false),
	})
}

// HandleGetRecipe 取回已生成的食譜
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	requestID := getRequestID(c)

	result, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeResponse(result))
}

// HandleDownload 下載單一格式的匯出檔
func (h *Handler) HandleDownload(c *gin.Context) {
	requestID := getRequestID(c)

	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		h.writeError(c, requestID, common.ErrUnknownFormat.Wrap(err))
		return
	}

	artifact, err := h.recipeService.ExportRecipe(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		h.writeError(c, requestID, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	c.Data(http.StatusOK, artifact.MIMEType, artifact.Data)
}

// HandleExport 匯出任意標題與內文，三種格式各自成功或失敗
func (h *Handler) HandleExport(c *gin.Context) {
	requestID := getRequestID(c)

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, requestID, common.ErrInvalidRequest.Wrap(err))
		return
	}

	bundle, err := h.recipeService.ExportDocument(c.Request.Context(), req.Title, req.BodyText)
	if err != nil {
		h.writeError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, ExportResponse{Exports: exportStatuses(bundle, "", true)})
}
