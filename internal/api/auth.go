package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/chillnow/chillnow-client/internal/apierrors"
	"github.com/chillnow/chillnow-client/internal/models"
	"github.com/chillnow/chillnow-client/pkg/log"
	"github.com/chillnow/chillnow-client/pkg/redact"
)

// Login выполняет вход по email+пароль.
// Маршрут публичный: токен (если остался от прошлой сессии) не прикладывается.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	const op = "api.Login"

	if email == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", op, apierrors.Validation(apierrors.MsgInvalidData))
	}

	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "api/auth/login/", nil, in, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Debug("login_ok", "email", redact.Email(email))

	return &out, nil
}

// Register регистрирует обычного пользователя.
// Пустая роль трактуется как UTILISATEUR.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	const op = "api.Register"

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%s: %w", op, apierrors.Validation(apierrors.MsgInvalidData))
	}

	if req.Role == "" {
		req.Role = models.RoleUtilisateur
	}

	var out models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "api/auth/register/", nil, req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// RegisterAnnonceur регистрирует аккаунт-анонсёра: профиль + фото
// заведения одной multipart-формой.
func (c *Client) RegisterAnnonceur(ctx context.Context, req models.RegisterRequest, image *Upload) (*models.LoginResponse, error) {
	const op = "api.RegisterAnnonceur"

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%s: %w", op, apierrors.Validation(apierrors.MsgInvalidData))
	}
	req.Role = models.RoleAnnonceur

	build := func(w *multipart.Writer) error {
		fields := map[string]string{
			"email":        req.Email,
			"password":     req.Password,
			"first_name":   req.FirstName,
			"last_name":    req.LastName,
			"phone_number": req.PhoneNumber,
			"role":         req.Role,
		}
		for name, value := range fields {
			if value == "" {
				continue
			}
			if err := w.WriteField(name, value); err != nil {
				return err
			}
		}

		if image != nil {
			return writeUpload(w, *image)
		}

		return nil
	}

	var out models.LoginResponse
	if err := c.doMultipart(ctx, http.MethodPost, "api/auth/register/annonceur/", build, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// ChangePassword меняет пароль текущего пользователя.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	const op = "api.ChangePassword"

	if current == "" || next == "" {
		return fmt.Errorf("%s: %w", op, apierrors.Validation(apierrors.MsgInvalidData))
	}

	in := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := c.do(ctx, http.MethodPost, "api/auth/change-password/", nil, in, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
