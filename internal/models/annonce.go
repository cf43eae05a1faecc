package models

// CategorieRef — краткая ссылка на рубрику внутри объявления.
type CategorieRef struct {
	ID  int64  `json:"id"`
	Nom string `json:"nom"`
}

// Photo — изображение объявления; Image — путь или абсолютный URL
// (нормализуется через api.MediaURL).
type Photo struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Horaire — часы работы заведения на один день недели.
// Jour приходит в разнобое форматов (EN/FR/сокращения), нормализация —
// забота пакета schedule.
type Horaire struct {
	ID             int64  `json:"id"`
	Jour           string `json:"jour"`
	HeureOuverture string `json:"heure_ouverture"`
	HeureFermeture string `json:"heure_fermeture"`
}

// Tarif — позиция прайса объявления (билет, столик, формула).
type Tarif struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Nom         string  `json:"nom"`
	Prix        float64 `json:"prix"`
	Description string  `json:"description,omitempty"`
}

// Annonce — объявление маркетплейса: заведение ("chill"), событие или столик.
type Annonce struct {
	ID               int64        `json:"id"`
	Titre            string       `json:"titre"`
	Description      string       `json:"description"`
	Categorie        CategorieRef `json:"categorie"`
	SousCategorie    CategorieRef `json:"sous_categorie"`
	Photos           []Photo      `json:"photos"`
	Localisation     string       `json:"localisation"`
	DateEvenement    string       `json:"date_evenement,omitempty"`
	EstActif         bool         `json:"est_actif"`
	CategorieNom     string       `json:"categorie_nom"`
	SousCategorieNom string       `json:"sous_categorie_nom"`
	Horaires         []Horaire    `json:"horaires,omitempty"`
	Tarifs           []Tarif      `json:"tarifs,omitempty"`
	Created          string       `json:"created"`
	Modified         string       `json:"modified"`
	Utilisateur      int64        `json:"utilisateur,omitempty"`
	Annonceur        *User        `json:"annonceur,omitempty"`
	Latitude         float64      `json:"latitude,omitempty"`
	Longitude        float64      `json:"longitude,omitempty"`
}

// AnnonceFilter — параметры листинга объявлений.
// Нулевые значения означают "без фильтра".
type AnnonceFilter struct {
	Categorie     int64
	SousCategorie int64
	Search        string
}
