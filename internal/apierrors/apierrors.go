// apierrors стандартизирует ошибки клиентского ядра.
//
// На вход — сырая причина (ошибка транспорта, ответ бэкенда, провал
// валидации или локального хранилища), на выход — ошибка с:
//   - видом (Validation/Storage/Network/Server) для программной обработки;
//   - коротким безопасным message для показа пользователю (без кодов
//     и технических деталей, язык продукта — французский).
//
// Никаких ретраев и обновления токенов здесь нет: классификация только
// описывает случившееся.
package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind — вид ошибки.
type Kind int

const (
	// KindValidation — аргументы операции неполны или некорректны;
	// ошибка возникает до каких-либо побочных эффектов.
	KindValidation Kind = iota + 1
	// KindStorage — отказ локального хранилища учётных данных.
	KindStorage
	// KindNetwork — ответ не получен (сеть/таймаут).
	KindNetwork
	// KindServer — бэкенд ответил статусом ошибки.
	KindServer
)

// Фиксированные сообщения для пользователя.
const (
	MsgNetwork        = "Erreur de connexion au serveur. Veuillez réessayer."
	MsgInvalidData    = "Données invalides"
	MsgSessionExpired = "Session expirée. Veuillez vous reconnecter."
	MsgNotFound       = "Ressource non trouvée"
	MsgServer         = "Erreur serveur. Veuillez réessayer plus tard."
	MsgGeneric        = "Une erreur est survenue"
)

// Error — классифицированная ошибка ядра.
type Error struct {
	Kind    Kind
	Status  int    // HTTP-статус для KindServer, иначе 0.
	Message string // безопасное сообщение для UI.
	Err     error  // исходная причина (может быть nil).
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation — ошибка предусловий, до побочных эффектов.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Storage оборачивает отказ локального хранилища.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: MsgGeneric, Err: err}
}

// Network — ответ не получен.
func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

// FromResponse классифицирует ответ бэкенда со статусом ошибки.
//
// Маппинг статусов фиксированный: 400 — сообщение сервера либо
// "Données invalides"; 401 — всегда "Session expirée..." (свой текст
// сервера игнорируем, чтобы UI был единообразен); 404/500 — фиксированные
// тексты; прочее — сообщение сервера либо общий fallback.
func FromResponse(status int, body []byte) *Error {
	serverMsg := messageFromBody(body)

	e := &Error{Kind: KindServer, Status: status}

	switch status {
	case http.StatusBadRequest:
		e.Message = MsgInvalidData
		if serverMsg != "" {
			e.Message = serverMsg
		}
	case http.StatusUnauthorized:
		e.Message = MsgSessionExpired
	case http.StatusNotFound:
		e.Message = MsgNotFound
	case http.StatusInternalServerError:
		e.Message = MsgServer
	default:
		e.Message = MsgGeneric
		if serverMsg != "" {
			e.Message = serverMsg
		}
	}

	return e
}

// KindOf возвращает вид ошибки (0, если ошибка не из этого пакета).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// UserMessage возвращает безопасное сообщение для показа пользователю.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return MsgGeneric
}

// messageFromBody достаёт поле error либо message из JSON-тела ошибки.
// Контракта на структуру тела нет, поэтому любые проблемы парсинга
// приводят к пустой строке, а не к ошибке.
func messageFromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if payload.Error != "" {
		return payload.Error
	}

	return payload.Message
}
