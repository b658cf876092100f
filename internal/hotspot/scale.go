package hotspot

import (
	"math"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// Scaler standardizes coordinates to zero mean and unit variance so
// that latitude and longitude contribute equally to cluster distances.
type Scaler struct {
	MeanLat, MeanLng float64
	StdLat, StdLng   float64
}

// FitScaler computes per-axis mean and population standard deviation.
// A zero-variance axis gets scale 1 so transform stays defined.
func FitScaler(records []model.Accident) Scaler {
	n := float64(len(records))
	if n == 0 {
		return Scaler{StdLat: 1, StdLng: 1}
	}

	var sumLat, sumLng float64
	for i := range records {
		sumLat += records[i].StartLat
		sumLng += records[i].StartLng
	}
	s := Scaler{MeanLat: sumLat / n, MeanLng: sumLng / n}

	var varLat, varLng float64
	for i := range records {
		dLat := records[i].StartLat - s.MeanLat
		dLng := records[i].StartLng - s.MeanLng
		varLat += dLat * dLat
		varLng += dLng * dLng
	}
	s.StdLat = math.Sqrt(varLat / n)
	s.StdLng = math.Sqrt(varLng / n)
	if s.StdLat == 0 {
		s.StdLat = 1
	}
	if s.StdLng == 0 {
		s.StdLng = 1
	}
	return s
}

// Transform maps raw coordinates into standardized space.
func (s Scaler) Transform(lat, lng float64) (float64, float64) {
	return (lat - s.MeanLat) / s.StdLat, (lng - s.MeanLng) / s.StdLng
}

// Inverse maps standardized coordinates back to raw lat/lng.
func (s Scaler) Inverse(x, y float64) (float64, float64) {
	return x*s.StdLat + s.MeanLat, y*s.StdLng + s.MeanLng
}
