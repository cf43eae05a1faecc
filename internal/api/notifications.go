package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chillnow/chillnow-client/internal/models"
)

// Notifications возвращает уведомления текущего пользователя.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	const op = "api.Notifications"

	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, "api/notifications/", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UnreadNotifications возвращает число непрочитанных уведомлений.
func (c *Client) UnreadNotifications(ctx context.Context) (int, error) {
	const op = "api.UnreadNotifications"

	var out models.UnreadCount
	if err := c.do(ctx, http.MethodGet, "api/notifications/unread-count/", nil, nil, &out); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return out.Count, nil
}

// MarkNotificationRead помечает уведомление прочитанным.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	const op = "api.MarkNotificationRead"

	path := fmt.Sprintf("api/notifications/%d/read/", id)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
