package models

// Categorie — рубрика каталога (chills, events, tables и т.п.).
// Ordre задаёт порядок отображения, сортировку выполняет бэкенд.
type Categorie struct {
	ID             int64           `json:"id"`
	Nom            string          `json:"nom"`
	Description    string          `json:"description,omitempty"`
	Ordre          int             `json:"ordre,omitempty"`
	SousCategories []SousCategorie `json:"sous_categories,omitempty"`
}

// SousCategorie — подрубрика внутри Categorie.
type SousCategorie struct {
	ID          int64  `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description,omitempty"`
	Ordre       int    `json:"ordre,omitempty"`
	Categorie   int64  `json:"categorie,omitempty"`
}
