package api

import "strings"

// MediaURL приводит путь изображения к абсолютному URL.
// Абсолютные ссылки проходят как есть; у относительных срезаются
// ведущие слэши и префикс media/, после чего путь присоединяется
// к media-базе.
func (c *Client) MediaURL(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "http") {
		return path
	}

	clean := strings.TrimLeft(path, "/")
	clean = strings.TrimPrefix(clean, "media/")

	base := strings.TrimSuffix(c.mediaURL.String(), "/")

	return base + "/" + clean
}
