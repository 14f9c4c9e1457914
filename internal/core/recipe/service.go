package recipe

import (
	"context"

	"recipe-master/internal/core/ai/service"
	"recipe-master/internal/core/export"
)

// Generator 文字生成，由 ai/service.Service 實作
type Generator interface {
	ProcessRequest(ctx context.Context, prompt string) (*service.Response, error)
}

// Archiver 匯出檔歸檔，失敗只記錄不影響請求
type Archiver interface {
	Archive(ctx context.Context, id string, artifacts []*export.Artifact) error
}

// successfulArtifacts 取出成功的匯出檔
func successfulArtifacts(b *export.Bundle) []*export.Artifact {
	artifacts := make([]*export.Artifact, 0, len(b.Results))
	for _, r := range b.Results {
		if r.Err == nil && r.Artifact != nil {
			artifacts = append(artifacts, r.Artifact)
		}
	}
	return artifacts
}
