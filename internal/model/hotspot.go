package model

// Hotspot holds aggregate statistics for one spatial cluster.
type Hotspot struct {
	Cluster     int     `csv:"Cluster" json:"cluster"`
	Count       int     `csv:"Count" json:"count"`
	AvgSeverity float64 `csv:"Avg_Severity" json:"avg_severity"`
	MaxSeverity int     `csv:"Max_Severity" json:"max_severity"`
	AvgDistance float64 `csv:"Avg_Distance" json:"avg_distance"`
	CenterLat   float64 `csv:"Center_Lat" json:"center_lat"`
	CenterLng   float64 `csv:"Center_Lng" json:"center_lng"`
	MinLat      float64 `csv:"Min_Lat" json:"min_lat"`
	MaxLat      float64 `csv:"Max_Lat" json:"max_lat"`
	MinLng      float64 `csv:"Min_Lng" json:"min_lng"`
	MaxLng      float64 `csv:"Max_Lng" json:"max_lng"`
}
