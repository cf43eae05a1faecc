package models

// Notification — уведомление пользователя.
type Notification struct {
	ID      int64  `json:"id"`
	Titre   string `json:"titre"`
	Message string `json:"message"`
	EstLue  bool   `json:"est_lue"`
	Created string `json:"created"`
}

// UnreadCount — счётчик непрочитанных уведомлений.
type UnreadCount struct {
	Count int `json:"count"`
}
