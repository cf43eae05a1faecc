package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromResponse_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "400_server_message", status: http.StatusBadRequest, body: `{"error":"Email déjà utilisé"}`, wantMsg: "Email déjà utilisé"},
		{name: "400_message_field", status: http.StatusBadRequest, body: `{"message":"Champ requis"}`, wantMsg: "Champ requis"},
		{name: "400_empty_body", status: http.StatusBadRequest, body: "", wantMsg: MsgInvalidData},
		{name: "400_broken_json", status: http.StatusBadRequest, body: "<html>", wantMsg: MsgInvalidData},

		// 401 — всегда фиксированный текст, свой текст сервера игнорируется.
		{name: "401_ignores_server_message", status: http.StatusUnauthorized, body: `{"error":"bad token"}`, wantMsg: MsgSessionExpired},
		{name: "401_empty_body", status: http.StatusUnauthorized, body: "", wantMsg: MsgSessionExpired},

		{name: "404", status: http.StatusNotFound, body: `{"error":"nope"}`, wantMsg: MsgNotFound},
		{name: "500", status: http.StatusInternalServerError, body: `{"error":"panic"}`, wantMsg: MsgServer},

		{name: "other_server_message", status: http.StatusConflict, body: `{"error":"Déjà réservé"}`, wantMsg: "Déjà réservé"},
		{name: "other_fallback", status: http.StatusTeapot, body: "", wantMsg: MsgGeneric},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := FromResponse(tt.status, []byte(tt.body))
			require.Equal(t, KindServer, e.Kind)
			require.Equal(t, tt.status, e.Status)
			require.Equal(t, tt.wantMsg, e.Message)
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	v := Validation("Données de connexion incomplètes")
	require.Equal(t, KindValidation, v.Kind)
	require.Equal(t, "Données de connexion incomplètes", v.Message)
	require.NoError(t, v.Err)

	cause := errors.New("disk full")
	s := Storage(cause)
	require.Equal(t, KindStorage, s.Kind)
	require.Equal(t, MsgGeneric, s.Message)
	require.ErrorIs(t, s, cause)

	n := Network(cause)
	require.Equal(t, KindNetwork, n.Kind)
	require.Equal(t, MsgNetwork, n.Message)
	require.ErrorIs(t, n, cause)
}

func TestKindOf_AndUserMessage_ThroughWrapping(t *testing.T) {
	t.Parallel()

	// Ошибка завернута как в вызывающем коде.
	err := fmt.Errorf("session.SignIn: %w", Storage(errors.New("disk full")))

	require.Equal(t, KindStorage, KindOf(err))
	require.Equal(t, MsgGeneric, UserMessage(err))
}

func TestKindOf_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("plain")
	require.Equal(t, Kind(0), KindOf(err))
	require.Equal(t, MsgGeneric, UserMessage(err))
}

func TestError_StringIncludesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	e := Network(cause)
	require.Contains(t, e.Error(), MsgNetwork)
	require.Contains(t, e.Error(), "refused")

	v := Validation(MsgInvalidData)
	require.Equal(t, MsgInvalidData, v.Error())
}
