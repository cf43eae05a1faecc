package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chillnow/chillnow-client/internal/apierrors"
	"github.com/chillnow/chillnow-client/internal/config"
	"github.com/chillnow/chillnow-client/internal/models"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(config.APIConfig{BaseURL: baseURL})
	require.NoError(t, err)
	return c
}

func TestNew_EmptyBaseURL(t *testing.T) {
	t.Parallel()

	_, err := New(config.APIConfig{})
	require.Error(t, err)
}

func TestIsPublicRoute(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		method string
		path   string
		public bool
	}{
		{"categories", http.MethodGet, "api/categories/", true},
		{"annonces_listing", http.MethodGet, "api/annonces/", true},
		{"annonces_search", http.MethodGet, "api/annonces/search/", true},
		{"annonce_by_numeric_id", http.MethodGet, "api/annonces/17/", true},
		{"login", http.MethodPost, "api/auth/login/", true},
		{"register", http.MethodPost, "api/auth/register/", true},
		{"register_annonceur", http.MethodPost, "api/auth/register/annonceur/", true},

		// Приватные подпути каталога: плейсхолдер id принимает только числа.
		{"mes_annonces", http.MethodGet, "api/annonces/mes-annonces/", false},
		{"mes_chills", http.MethodGet, "api/annonces/mes-chills/", false},
		{"mes_tickets", http.MethodGet, "api/annonces/mes-tickets/", false},
		{"non_numeric_id", http.MethodGet, "api/annonces/abc/", false},

		// Метод — часть маршрута.
		{"post_annonces", http.MethodPost, "api/annonces/", false},
		{"delete_annonce", http.MethodDelete, "api/annonces/17/", false},
		{"get_login", http.MethodGet, "api/auth/login/", false},

		{"profile", http.MethodGet, "api/auth/profile/", false},
		{"deeper_path", http.MethodGet, "api/annonces/17/photos/", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.public, isPublicRoute(tc.method, tc.path))
		})
	}
}

func TestClient_PublicRoute_NoBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Annonce{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetAuthToken("stale-token")

	_, err := c.Annonces(context.Background(), models.AnnonceFilter{})
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestClient_PrivateRoute_AttachesBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(dataEnvelope[[]models.Annonce]{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetAuthToken("acc-token")

	_, err := c.MyAnnonces(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer acc-token", gotAuth)
}

func TestClient_ClearAuthToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(dataEnvelope[[]models.Annonce]{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetAuthToken("acc-token")
	c.ClearAuthToken()

	_, err := c.MyAnnonces(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestClient_Unauthorized_SessionExpired(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token has wrong type"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetAuthToken("expired")

	_, err := c.MyAnnonces(context.Background())
	require.Error(t, err)
	require.Equal(t, apierrors.KindServer, apierrors.KindOf(err))
	// Текст сервера игнорируется: для 401 сообщение всегда фиксированное.
	require.Equal(t, apierrors.MsgSessionExpired, apierrors.UserMessage(err))
}

func TestClient_BadRequest_UsesServerMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Email déjà utilisé"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.Register(context.Background(), models.RegisterRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	require.Equal(t, apierrors.KindServer, apierrors.KindOf(err))
	require.Equal(t, "Email déjà utilisé", apierrors.UserMessage(err))
}

func TestClient_NoResponse_Network(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // соединение будет отклонено

	c := newTestClient(t, srv.URL)

	_, err := c.Categories(context.Background())
	require.Error(t, err)
	require.Equal(t, apierrors.KindNetwork, apierrors.KindOf(err))
	require.Equal(t, apierrors.MsgNetwork, apierrors.UserMessage(err))
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login/", r.URL.Path)

		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "user@example.com", in.Email)

		_ = json.NewEncoder(w).Encode(models.LoginResponse{
			Access:  "acc-token",
			Refresh: "ref-token",
			User:    models.User{ID: 42, Email: in.Email, Role: models.RoleUtilisateur},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	resp, err := c.Login(context.Background(), "user@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "acc-token", resp.Access)
	require.Equal(t, int64(42), resp.User.ID)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:1")

	_, err := c.Login(context.Background(), "", "secret123")
	require.Error(t, err)
	require.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))

	_, err = c.Login(context.Background(), "user@example.com", "")
	require.Error(t, err)
	require.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))
}

func TestMyAnnonces_EnvelopeAndPhotoResolution(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/annonces/mes-annonces/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(dataEnvelope[[]models.Annonce]{
			Data: []models.Annonce{{
				ID:     7,
				Titre:  "Chill Lounge",
				Photos: []models.Photo{{Image: "/media/photos/7.jpg"}},
			}},
		})
	}))
	defer srv.Close()

	c, err := New(config.APIConfig{BaseURL: srv.URL, MediaURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	c.SetAuthToken("acc-token")

	annonces, err := c.MyAnnonces(context.Background())
	require.NoError(t, err)
	require.Len(t, annonces, 1)
	require.Equal(t, "https://cdn.example.com/photos/7.jpg", annonces[0].Photos[0].Image)
}

func TestAnnonces_FilterQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "3", r.URL.Query().Get("categorie"))
		require.Equal(t, "9", r.URL.Query().Get("sous_categorie"))
		require.Equal(t, "lounge", r.URL.Query().Get("search"))
		_ = json.NewEncoder(w).Encode([]models.Annonce{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.Annonces(context.Background(), models.AnnonceFilter{
		Categorie:     3,
		SousCategorie: 9,
		Search:        "lounge",
	})
	require.NoError(t, err)
}

func TestMediaURL(t *testing.T) {
	t.Parallel()

	c, err := New(config.APIConfig{
		BaseURL:  "https://backend.example.com/",
		MediaURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://other.example.com/x.jpg", "https://other.example.com/x.jpg"},
		{"/media/photos/1.jpg", "https://cdn.example.com/photos/1.jpg"},
		{"media/photos/1.jpg", "https://cdn.example.com/photos/1.jpg"},
		{"photos/1.jpg", "https://cdn.example.com/photos/1.jpg"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, c.MediaURL(tc.in), "path %q", tc.in)
	}
}

func TestCreatePayment_Validation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "http://localhost:1")

	_, err := c.CreatePayment(context.Background(), models.PaymentRequest{})
	require.Error(t, err)
	require.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))

	_, err = c.CreatePayment(context.Background(), models.PaymentRequest{
		Annonce:     5,
		Amount:      1000,
		PaymentType: "cash",
	})
	require.Error(t, err)
	require.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))
}

func TestCreatePayment_OK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payments/create/", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(models.PaymentResponse{
			ID:            "pay-1",
			MontantTotal:  10000,
			MontantAvance: 3000,
			TauxAvance:    30,
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetAuthToken("acc-token")

	resp, err := c.CreatePayment(context.Background(), models.PaymentRequest{
		Annonce:     5,
		Amount:      10000,
		PaymentType: models.PaymentTypeTicket,
		Tarif:       2,
	})
	require.NoError(t, err)
	require.Equal(t, "pay-1", resp.ID)
	require.Equal(t, float64(3000), resp.MontantAvance)
}
