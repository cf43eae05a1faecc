package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chillnow/chillnow-client/internal/apierrors"
	"github.com/chillnow/chillnow-client/internal/models"
)

// dataEnvelope — обёртка {"data": ...}, в которую бэкенд заворачивает
// часть приватных ответов.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// AnnonceForm — данные создаваемого/редактируемого объявления.
type AnnonceForm struct {
	Titre         string
	Description   string
	Categorie     int64
	SousCategorie int64
	Localisation  string
	DateEvenement string
	Photos        []Upload
}

// Annonces возвращает листинг объявлений с фильтрами.
// Маршрут публичный; пути фотографий нормализуются в абсолютные URL.
func (c *Client) Annonces(ctx context.Context, f models.AnnonceFilter) ([]models.Annonce, error) {
	const op = "api.Annonces"

	query := url.Values{}
	if f.Categorie != 0 {
		query.Set("categorie", strconv.FormatInt(f.Categorie, 10))
	}
	if f.SousCategorie != 0 {
		query.Set("sous_categorie", strconv.FormatInt(f.SousCategorie, 10))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	var out []models.Annonce
	if err := c.do(ctx, http.MethodGet, "api/annonces/", query, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.resolvePhotos(out)

	return out, nil
}

// SearchAnnonces — полнотекстовый поиск по объявлениям. Маршрут публичный.
func (c *Client) SearchAnnonces(ctx context.Context, search string) ([]models.Annonce, error) {
	const op = "api.SearchAnnonces"

	query := url.Values{}
	query.Set("query", search)

	var out []models.Annonce
	if err := c.do(ctx, http.MethodGet, "api/annonces/search/", query, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.resolvePhotos(out)

	return out, nil
}

// AnnonceByID возвращает объявление по id. Маршрут публичный.
func (c *Client) AnnonceByID(ctx context.Context, id int64) (*models.Annonce, error) {
	const op = "api.AnnonceByID"

	var out models.Annonce
	path := fmt.Sprintf("api/annonces/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range out.Photos {
		out.Photos[i].Image = c.MediaURL(out.Photos[i].Image)
	}

	return &out, nil
}

// MyAnnonces — объявления текущего анонсёра.
func (c *Client) MyAnnonces(ctx context.Context) ([]models.Annonce, error) {
	return c.myListing(ctx, "api.MyAnnonces", "api/annonces/mes-annonces/")
}

// MyChills — заведения текущего анонсёра.
func (c *Client) MyChills(ctx context.Context) ([]models.Annonce, error) {
	return c.myListing(ctx, "api.MyChills", "api/annonces/mes-chills/")
}

// MyTickets — события (билеты) текущего анонсёра.
func (c *Client) MyTickets(ctx context.Context) ([]models.Annonce, error) {
	return c.myListing(ctx, "api.MyTickets", "api/annonces/mes-tickets/")
}

func (c *Client) myListing(ctx context.Context, op, path string) ([]models.Annonce, error) {
	var out dataEnvelope[[]models.Annonce]
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.resolvePhotos(out.Data)

	return out.Data, nil
}

// CreateAnnonce создаёт объявление multipart-формой (поля + фото).
func (c *Client) CreateAnnonce(ctx context.Context, form AnnonceForm) (*models.Annonce, error) {
	const op = "api.CreateAnnonce"

	if form.Titre == "" || form.Categorie == 0 {
		return nil, fmt.Errorf("%s: %w", op, apierrors.Validation(apierrors.MsgInvalidData))
	}

	var out models.Annonce
	if err := c.doMultipart(ctx, http.MethodPost, "api/annonces/", annonceFormBuilder(form), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// UpdateAnnonce обновляет объявление multipart-формой.
func (c *Client) UpdateAnnonce(ctx context.Context, id int64, form AnnonceForm) (*models.Annonce, error) {
	const op = "api.UpdateAnnonce"

	var out models.Annonce
	path := fmt.Sprintf("api/annonces/%d/", id)
	if err := c.doMultipart(ctx, http.MethodPut, path, annonceFormBuilder(form), &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// DeleteAnnonce удаляет объявление.
func (c *Client) DeleteAnnonce(ctx context.Context, id int64) error {
	const op = "api.DeleteAnnonce"

	path := fmt.Sprintf("api/annonces/%d/", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func annonceFormBuilder(form AnnonceForm) func(w *multipart.Writer) error {
	return func(w *multipart.Writer) error {
		fields := map[string]string{
			"titre":          form.Titre,
			"description":    form.Description,
			"localisation":   form.Localisation,
			"date_evenement": form.DateEvenement,
		}
		if form.Categorie != 0 {
			fields["categorie"] = strconv.FormatInt(form.Categorie, 10)
		}
		if form.SousCategorie != 0 {
			fields["sous_categorie"] = strconv.FormatInt(form.SousCategorie, 10)
		}

		for name, value := range fields {
			if value == "" {
				continue
			}
			if err := w.WriteField(name, value); err != nil {
				return err
			}
		}

		for _, photo := range form.Photos {
			if photo.Field == "" {
				photo.Field = "photos"
			}
			if err := writeUpload(w, photo); err != nil {
				return err
			}
		}

		return nil
	}
}

func (c *Client) resolvePhotos(annonces []models.Annonce) {
	for i := range annonces {
		for j := range annonces[i].Photos {
			annonces[i].Photos[j].Image = c.MediaURL(annonces[i].Photos[j].Image)
		}
	}
}
