package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masonbass/retail-api/internal/application/usecase"
)

// PostsHandler feed público de la página de Facebook.
type PostsHandler struct {
	uc *usecase.PostsUseCase
}

// NewPostsHandler construye el handler. uc nil responde 503.
func NewPostsHandler(uc *usecase.PostsUseCase) *PostsHandler {
	return &PostsHandler{uc: uc}
}

// List godoc
// @Summary      Publicaciones de la página de Facebook
// @Tags         social
// @Produce      json
// @Success      200  {array}   dto.SocialPost
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/facebook/posts [get]
func (h *PostsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
