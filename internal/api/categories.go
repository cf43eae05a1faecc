package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chillnow/chillnow-client/internal/models"
)

// Categories возвращает рубрики каталога с вложенными подрубриками.
// Маршрут публичный.
func (c *Client) Categories(ctx context.Context) ([]models.Categorie, error) {
	const op = "api.Categories"

	var out []models.Categorie
	if err := c.do(ctx, http.MethodGet, "api/categories/", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
