package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-master/internal/core/export"
	"recipe-master/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeService 食譜生成服務
// --------------------------------------------------
type RecipeService struct {
	generator Generator
	store     *Store
	exporter  *export.Exporter
	archiver  Archiver
	now       func() time.Time
}

// NewRecipeService 創建新的食譜生成服務，archiver 可為 nil
func NewRecipeService(generator Generator, store *Store, exporter *export.Exporter, archiver Archiver) *RecipeService {
	return &RecipeService{
		generator: generator,
		store:     store,
		exporter:  exporter,
		archiver:  archiver,
		now:       time.Now,
	}
}

// GenerateRecipe 驗證請求、生成內文、保存並匯出三種格式
func (s *RecipeService) GenerateRecipe(ctx context.Context, req RecipeRequest) (*GeneratedRecipe, *export.Bundle, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	prompt := BuildPrompt(req)
	resp, err := s.generator.ProcessRequest(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("AI service error: %w", err)
	}

	result := &GeneratedRecipe{
		ID:              common.GenerateUUID(),
		Title:           req.Title(),
		BodyText:        resp.Content,
		Difficulty:      req.Difficulty,
		TargetWordCount: req.TargetWordCount,
		Model:           resp.Model,
		CacheHit:        resp.CacheHit,
		CreatedAt:       s.now().UTC().Truncate(time.Second),
	}

	common.LogDebug("AI 回應內容 (recipe/generate)",
		zap.String("id", result.ID),
		zap.Int("ai_response_length", len(result.BodyText)),
		zap.Int("ai_response_words", len(strings.Fields(result.BodyText))),
	)

	if err := s.store.Save(ctx, result); err != nil {
		return nil, nil, err
	}

	bundle, err := s.exporter.Export(ctx, export.DocumentFromRecipe(result))
	if err != nil {
		return nil, nil, err
	}
	s.archive(ctx, result.ID, bundle)

	return result, bundle, nil
}

// archive 上傳成功的匯出檔，錯誤只記錄
func (s *RecipeService) archive(ctx context.Context, id string, bundle *export.Bundle) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, id, successfulArtifacts(bundle)); err != nil {
		common.LogWarn("匯出檔歸檔失敗", zap.String("id", id), zap.Error(err))
	}
}

// GetRecipe 取回已生成的食譜
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*GeneratedRecipe, error) {
	return s.store.Load(ctx, id)
}

// ExportRecipe 將已保存的食譜匯出為單一格式
func (s *RecipeService) ExportRecipe(ctx context.Context, id string, format export.Format) (*export.Artifact, error) {
	r, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.exporter.Render(format, export.DocumentFromRecipe(r))
}

// ExportDocument 匯出任意標題與內文
func (s *RecipeService) ExportDocument(ctx context.Context, title, body string) (*export.Bundle, error) {
	return s.exporter.Export(ctx, export.Document{Title: strings.TrimSpace(title), Body: body})
}

// PreviewPrompt 只產生 prompt，不呼叫模型
func (s *RecipeService) PreviewPrompt(req RecipeRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return BuildPrompt(req), nil
}
