package models

// LoginResponse — ответ бэкенда на login/register.
//
// Access — короткоживущий bearer-токен для авторизации запросов,
// Refresh — секрет для будущего продления сессии. Оба для клиента
// непрозрачны: мы их храним и предъявляем, но не разбираем.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// RegisterRequest — регистрация обычного пользователя.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role,omitempty"`
}

// ChangePasswordRequest — смена пароля текущего пользователя.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfileRequest — частичное обновление профиля;
// пустые поля бэкенд не трогает.
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
}
