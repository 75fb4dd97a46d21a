package document

import "github.com/ignatzorin/marketplace-backend/internal/models"

// ZipDocument справочная запись почтового индекса. Ключом служит сам индекс.
type ZipDocument struct {
	Zip      string       `bson:"_id"`
	City     string       `bson:"city"`
	State    string       `bson:"state"`
	Location GeoJSONPoint `bson:"location"`
}

func ZipFromModel(l models.GeoLocation) (ZipDocument, error) {
	return ZipDocument{
		Zip:      l.Zip,
		City:     l.City,
		State:    l.State,
		Location: NewGeoJSONPoint(l.Point()),
	}, nil
}

func (d ZipDocument) ToModel() models.GeoLocation {
	l := models.GeoLocation{Zip: d.Zip, City: d.City, State: d.State}
	if len(d.Location.Coordinates) == 2 {
		l.Longitude = d.Location.Coordinates[0]
		l.Latitude = d.Location.Coordinates[1]
	}
	return l
}
