package models

// Transporter представляет перевозчика автомобилей.
type Transporter struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
