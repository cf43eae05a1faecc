package models

// Роли пользователей, которые возвращает бэкенд.
const (
	RoleUtilisateur = "UTILISATEUR"
	RoleAnnonceur   = "ANNONCEUR"
)

// User — профиль пользователя (каноничная суперсхема бэкенда).
//
// Обязательные поля для валидной сессии: ID, Email, Role.
// Остальные поля опциональны и зависят от роли/полноты профиля.
type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Role         string  `json:"role"`
	ProfileImage string  `json:"profile_image,omitempty"`
	PhoneNumber  string  `json:"phone_number,omitempty"`
	Address      string  `json:"address,omitempty"`
	City         string  `json:"city,omitempty"`
	Username     string  `json:"username,omitempty"`
	TauxAvance   float64 `json:"taux_avance,omitempty"`
}
