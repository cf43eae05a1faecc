// api — единый HTTP-клиент бэкенда ChillNow.
//
// Клиент один на процесс: базовый URL и таймаут берутся из конфигурации,
// bearer-токен выставляет session.Manager (и только он — обратной записи
// в сессию или хранилище отсюда нет). Перед каждым запросом токен
// прикладывается ко всем маршрутам, кроме явного перечня публичных.
//
// Ошибки транспорта и статусы ответов нормализуются через apierrors;
// ретраев, бэкоффа и автоматического обновления токена нет — 401 для
// вызывающего означает "сессия истекла".
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chillnow/chillnow-client/internal/apierrors"
	"github.com/chillnow/chillnow-client/internal/config"
	"github.com/chillnow/chillnow-client/pkg/log"
	"github.com/chillnow/chillnow-client/pkg/redact"
)

// Client — разделяемый HTTP-клиент с авторизацией по умолчанию.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	mediaURL   *url.URL
	userAgent  string

	mu    sync.RWMutex
	token string
}

// New создаёт клиент по конфигурации API.
// Пустой media_url означает, что медиа раздаётся с base_url.
func New(cfg config.APIConfig) (*Client, error) {
	const op = "api.New"

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s: empty base url", op)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}

	media := base
	if cfg.MediaURL != "" {
		media, err = url.Parse(cfg.MediaURL)
		if err != nil {
			return nil, fmt.Errorf("%s: parse media url: %w", op, err)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		mediaURL:   media,
		userAgent:  "chillnow-client",
	}, nil
}

// SetAuthToken выставляет bearer-токен по умолчанию.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearAuthToken сбрасывает bearer-токен.
func (c *Client) ClearAuthToken() {
	c.SetAuthToken("")
}

// AuthToken возвращает текущий bearer-токен ("" — не выставлен).
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// route — метод + шаблон пути публичного маршрута.
type route struct {
	method  string
	pattern string
}

// Публичные маршруты: токен к ним не прикладывается.
// Сопоставление посегментное и точное; плейсхолдер {id} принимает
// только числовой сегмент, так что api/annonces/mes-annonces/ сюда
// не попадает и остаётся приватным.
var publicRoutes = []route{
	{http.MethodGet, "api/categories/"},
	{http.MethodGet, "api/annonces/"},
	{http.MethodGet, "api/annonces/search/"},
	{http.MethodGet, "api/annonces/{id}/"},
	{http.MethodPost, "api/auth/login/"},
	{http.MethodPost, "api/auth/register/"},
	{http.MethodPost, "api/auth/register/annonceur/"},
}

// isPublicRoute проверяет путь по перечню публичных маршрутов.
func isPublicRoute(method, path string) bool {
	segs := splitPath(path)

	for _, r := range publicRoutes {
		if r.method != method {
			continue
		}

		if matchSegments(splitPath(r.pattern), segs) {
			return true
		}
	}

	return false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}

	return strings.Split(p, "/")
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}

	for i, p := range pattern {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			if !isNumeric(segs[i]) {
				return false
			}
			continue
		}

		if p != segs[i] {
			return false
		}
	}

	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// do выполняет запрос с JSON-телом in (nil — без тела) и декодирует
// успешный ответ в out (nil — тело не интересует).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	const op = "api.do"

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart выполняет запрос с multipart/form-data телом,
// собранным функцией build.
func (c *Client) doMultipart(ctx context.Context, method, path string, build func(w *multipart.Writer) error, out any) error {
	const op = "api.doMultipart"

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return fmt.Errorf("%s: build form: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: close form: %w", op, err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

// newRequest собирает запрос: URL относительно базового, стандартные
// заголовки и bearer-токен для непубличных маршрутов.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if tok := c.AuthToken(); tok != "" && !isPublicRoute(method, path) {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	return req, nil
}

// send выполняет запрос и нормализует результат.
func (c *Client) send(req *http.Request, out any) error {
	const op = "api.send"

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Ответ не получен: сеть, DNS, таймаут.
		return fmt.Errorf("%s: %w", op, apierrors.Network(err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, apierrors.Network(err))
	}

	log.From(req.Context()).Debug("api_request_done",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start).String(),
		"auth", authLogValue(req),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: %w", op, apierrors.FromResponse(resp.StatusCode, data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}

	return nil
}

func authLogValue(req *http.Request) string {
	if req.Header.Get("Authorization") == "" {
		return ""
	}

	return redact.Token()
}

// Upload — файл для multipart-загрузки (фото объявления, аватар).
type Upload struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

// writeUpload пишет файл в multipart-форму с заданным Content-Type.
func writeUpload(w *multipart.Writer, up Upload) error {
	if up.Field == "" || up.Name == "" || up.Reader == nil {
		return fmt.Errorf("incomplete upload: field=%q name=%q", up.Field, up.Name)
	}

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, up.Field, up.Name))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, up.Reader)
	return err
}
