package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/chillnow/chillnow-client/internal/models"
)

// Profile возвращает профиль текущего пользователя.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	const op = "api.Profile"

	var out dataEnvelope[models.User]
	if err := c.do(ctx, http.MethodGet, "api/profile/", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.Data.ProfileImage = c.MediaURL(out.Data.ProfileImage)

	return &out.Data, nil
}

// UpdateProfile частично обновляет профиль; возвращает обновлённого
// пользователя. Синхронизация сессии — забота session.Manager.
func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	const op = "api.UpdateProfile"

	var out dataEnvelope[models.User]
	if err := c.do(ctx, http.MethodPut, "api/profile/", nil, req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.Data.ProfileImage = c.MediaURL(out.Data.ProfileImage)

	return &out.Data, nil
}

// UpdateProfileImage загружает новый аватар multipart-формой.
func (c *Client) UpdateProfileImage(ctx context.Context, image Upload) (*models.User, error) {
	const op = "api.UpdateProfileImage"

	if image.Field == "" {
		image.Field = "profile_image"
	}

	build := func(w *multipart.Writer) error {
		return writeUpload(w, image)
	}

	var out dataEnvelope[models.User]
	if err := c.doMultipart(ctx, http.MethodPut, "api/profile/", build, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out.Data.ProfileImage = c.MediaURL(out.Data.ProfileImage)

	return &out.Data, nil
}
