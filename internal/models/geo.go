package models

// GeoPoint точка на карте.
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// GeoLocation точка на карте с адресной информацией.
type GeoLocation struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zip"`
}

// Point возвращает координаты без адреса.
func (l GeoLocation) Point() GeoPoint {
	return GeoPoint{Longitude: l.Longitude, Latitude: l.Latitude}
}

// Asset файл, загруженный во внешнее хранилище.
type Asset struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Video ссылка на видео, у видео нет собственного идентификатора.
type Video struct {
	URL string `json:"url"`
}
