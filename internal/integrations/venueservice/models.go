package venueservice

// Venue справочные данные площадки из каталога
// Движок бронирования использует их только на чтение
type Venue struct {
	ID           int64   `json:"id"`
	OwnerID      int64   `json:"ownerId"`
	Title        string  `json:"title"`
	PricePerHour float64 `json:"pricePerHour"`
	Capacity     int     `json:"capacity"`
	IsActive     bool    `json:"isActive"`
}
