package chunk

import "github.com/helixml/trieve-go/domain/model"

// GeoInfo is a point on the globe.
type GeoInfo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ModelName implements model.Model.
func (GeoInfo) ModelName() string { return "GeoInfo" }

// Validate implements model.Validator.
func (GeoInfo) Validate() error { return nil }

// UnmarshalJSON implements json.Unmarshaler.
func (g *GeoInfo) UnmarshalJSON(data []byte) error {
	type plain GeoInfo
	return model.Decode(data, (*plain)(g), g.ModelName(), "lat", "lon")
}

// LocationRadius matches chunks located within Radius of Center.
type LocationRadius struct {
	Center GeoInfo `json:"center" validate:"-"`
	Radius float64 `json:"radius"`
}

// ModelName implements model.Model.
func (LocationRadius) ModelName() string { return "LocationRadius" }

// Validate implements model.Validator.
func (l LocationRadius) Validate() error {
	return model.NewChecker(l.ModelName()).Nested("center", l.Center.Validate()).Err()
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LocationRadius) UnmarshalJSON(data []byte) error {
	type plain LocationRadius
	return model.Decode(data, (*plain)(l), l.ModelName(), "center", "radius")
}
