package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chillnow/chillnow-client/internal/apierrors"
	"github.com/chillnow/chillnow-client/internal/models"
)

// CreatePayment создаёт платёж по объявлению (билет или столик).
// Возвращённый PaymentResponse.ID используется как transaction_id чекаута.
func (c *Client) CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error) {
	const op = "api.CreatePayment"

	if req.Annonce == 0 || req.Amount <= 0 {
		return nil, fmt.Errorf("%s: %w", op, apierrors.Validation(apierrors.MsgInvalidData))
	}
	if req.PaymentType != models.PaymentTypeTicket && req.PaymentType != models.PaymentTypeTable {
		return nil, fmt.Errorf("%s: %w", op, apierrors.Validation(apierrors.MsgInvalidData))
	}

	var out models.PaymentResponse
	if err := c.do(ctx, http.MethodPost, "api/payments/create/", nil, req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}
