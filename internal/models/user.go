package models

// Client представляет клиента, на которого оформлена заявка.
// Запись только для чтения, ядро её не изменяет.
type Client struct {
	ID       int     `json:"id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Telegram string  `json:"telegram"`
	Company  *string `json:"company"`
	Address  *string `json:"address"`
	Email    string  `json:"email"`
}

// TokenPair представляет пару токенов, выдаваемую сервисом авторизации.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
