// payment — мост к хостед-чекауту CinetPay.
//
// В мобильном приложении чекаут живёт во встроенном web-view и общается
// с хостом postMessage-сообщениями; здесь ту же роль играет loopback
// HTTP-приёмник: страница чекаута POST-ит сообщения моста на локальный
// адрес, клиент ждёт первый терминальный исход. Набор типов сообщений
// закрытый, имена в разных версиях страницы различаются — оба варианта
// нормализуются в один Status.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chillnow/chillnow-client/internal/config"
	"github.com/chillnow/chillnow-client/internal/models"
	"github.com/chillnow/chillnow-client/pkg/log"
)

// Status — терминальный исход чекаута.
type Status int

const (
	StatusSuccess Status = iota + 1
	StatusFailed
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrBridgeClosed — приёмник остановлен до получения исхода.
var ErrBridgeClosed = errors.New("payment bridge closed")

// Message — сырое сообщение моста.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Result — нормализованный исход чекаута.
type Result struct {
	Status Status
	// Data — полезная нагрузка шлюза как есть (для логов/диагностики).
	Data json.RawMessage
}

// NormalizeType сводит варианты именования типов сообщений к Status.
// Второй результат false — тип не терминальный либо неизвестный.
func NormalizeType(t string) (Status, bool) {
	switch t {
	case "SUCCESS", "payment_success":
		return StatusSuccess, true
	case "ERROR", "payment_failed":
		return StatusFailed, true
	case "CLOSE", "payment_closed":
		return StatusClosed, true
	default:
		return 0, false
	}
}

// Checkout — параметры сеанса оплаты, передаваемые странице чекаута.
// Поля повторяют контракт CinetPay.getCheckout.
type Checkout struct {
	APIKey        string  `json:"apikey"`
	SiteID        string  `json:"site_id"`
	Mode          string  `json:"mode"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Channels      string  `json:"channels"`
	Description   string  `json:"description"`

	CustomerName    string `json:"customer_name,omitempty"`
	CustomerSurname string `json:"customer_surname,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty"`
	CustomerPhone   string `json:"customer_phone_number,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`
	CustomerCity    string `json:"customer_city,omitempty"`
	CustomerCountry string `json:"customer_country,omitempty"`

	NotifyURL string `json:"notify_url,omitempty"`
}

// NewCheckout собирает сеанс оплаты аванса по созданному платежу.
// transaction_id — id платежа с бэкенда; если его нет, генерируется UUID.
func NewCheckout(cfg config.CinetPayConfig, p *models.PaymentResponse, description string, billing models.BillingInfo) Checkout {
	txID := ""
	if p != nil {
		txID = p.ID
	}
	if txID == "" {
		txID = uuid.NewString()
	}

	amount := 0.0
	if p != nil {
		amount = p.MontantAvance
	}

	return Checkout{
		APIKey:          cfg.APIKey,
		SiteID:          cfg.SiteID,
		Mode:            cfg.Mode,
		TransactionID:   txID,
		Amount:          amount,
		Currency:        cfg.Currency,
		Channels:        "ALL",
		Description:     description,
		CustomerName:    billing.FirstName,
		CustomerSurname: billing.LastName,
		CustomerEmail:   billing.Email,
		CustomerPhone:   billing.Phone,
		CustomerAddress: billing.Address,
		CustomerCity:    billing.City,
		CustomerCountry: "CI",
	}
}

// Bridge — loopback-приёмник сообщений чекаута.
type Bridge struct {
	srv *http.Server
	ln  net.Listener

	once    sync.Once
	results chan Result
	done    chan struct{}
}

// NewBridge запускает приёмник на addr (порт 0 — эфемерный).
func NewBridge(ctx context.Context, addr string) (*Bridge, error) {
	const op = "payment.NewBridge"

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b := &Bridge{
		ln:      ln,
		results: make(chan Result, 1),
		done:    make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Post("/bridge", b.handleMessage)

	b.srv = &http.Server{Handler: r}

	logger := log.From(ctx)
	go func() {
		if err := b.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("payment_bridge_serve_failed", "err", err.Error())
		}
	}()

	logger.Debug("payment_bridge_listen", "url", b.URL())

	return b, nil
}

// URL — адрес, на который страница чекаута шлёт сообщения моста.
func (b *Bridge) URL() string {
	return fmt.Sprintf("http://%s/bridge", b.ln.Addr().String())
}

// WaitResult блокируется до первого терминального сообщения,
// отмены контекста или остановки приёмника.
func (b *Bridge) WaitResult(ctx context.Context) (Result, error) {
	const op = "payment.WaitResult"

	select {
	case res := <-b.results:
		return res, nil
	case <-ctx.Done():
		return Result{}, fmt.Errorf("%s: %w", op, ctx.Err())
	case <-b.done:
		return Result{}, fmt.Errorf("%s: %w", op, ErrBridgeClosed)
	}
}

// Close останавливает приёмник. Идемпотентен.
func (b *Bridge) Close() error {
	var err error
	b.once.Do(func() {
		close(b.done)
		err = b.srv.Close()
	})

	return err
}

// handleMessage принимает сообщение моста; нетерминальные и неизвестные
// типы подтверждаются, но игнорируются. Учитывается только первый
// терминальный исход — остальные чекаут может слать повторно.
func (b *Bridge) handleMessage(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "bad message", http.StatusBadRequest)
		return
	}

	status, terminal := NormalizeType(msg.Type)
	if !terminal {
		log.From(r.Context()).Debug("payment_bridge_ignored", "type", msg.Type)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	select {
	case b.results <- Result{Status: status, Data: msg.Data}:
		log.From(r.Context()).Info("payment_bridge_result", "status", status.String())
	default:
		// Исход уже получен.
	}

	w.WriteHeader(http.StatusOK)
}
