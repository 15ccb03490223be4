package models

import "encoding/json"

// BidPatch представляет частичное обновление заявки: перечисленные поля
// перезаписываются, остальные сохраняют прежние значения.
type BidPatch map[string]interface{}

// ApplyTo накладывает патч на копию заявки и возвращает её.
// Слияние неглубокое, через сериализацию в JSON и обратно.
func (p BidPatch) ApplyTo(bid Bid) Bid {
	raw, err := json.Marshal(p)
	if err != nil {
		return bid
	}
	merged := bid
	if err = json.Unmarshal(raw, &merged); err != nil {
		return bid
	}
	return merged
}

// String возвращает строковое значение поля патча.
func (p BidPatch) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	}
	return ""
}

// Bool возвращает булево значение поля патча.
func (p BidPatch) Bool(key string) bool {
	v, _ := p[key].(bool)
	return v
}

// Has сообщает, присутствует ли поле в патче.
func (p BidPatch) Has(key string) bool {
	_, ok := p[key]
	return ok
}
