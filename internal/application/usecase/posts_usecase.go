package usecase

import (
	"context"
	"fmt"

	"github.com/masonbass/retail-api/internal/application/dto"
	"github.com/masonbass/retail-api/internal/domain"
)

// PostSource origen de publicaciones de la página (Graph API en producción).
type PostSource interface {
	Posts(ctx context.Context) ([]dto.SocialPost, error)
}

// PostsUseCase expone las publicaciones de la página de la empresa.
type PostsUseCase struct {
	source PostSource
}

// NewPostsUseCase construye el caso de uso; source nil deja el feed deshabilitado.
func NewPostsUseCase(source PostSource) *PostsUseCase {
	return &PostsUseCase{source: source}
}

// List devuelve las publicaciones. Sin origen configurado o si el proveedor falla responde ErrUnavailable.
func (uc *PostsUseCase) List(ctx context.Context) ([]dto.SocialPost, error) {
	if uc == nil || uc.source == nil {
		return nil, fmt.Errorf("feed de facebook sin configurar: %w", domain.ErrUnavailable)
	}
	posts, err := uc.source.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrUnavailable)
	}
	return posts, nil
}
