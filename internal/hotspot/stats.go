package hotspot

import (
	"sort"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// Summarize computes per-cluster statistics over labeled records.
// Clusters are returned sorted by count descending, cluster ID
// ascending on ties. Empty clusters are omitted.
func Summarize(records []model.Accident, k int) []model.Hotspot {
	acc := make([]struct {
		count   int
		sevSum  int
		sevMax  int
		distSum float64
		latSum  float64
		lngSum  float64
		minLat  float64
		maxLat  float64
		minLng  float64
		maxLng  float64
	}, k)

	for i := range records {
		c := records[i].Cluster
		if c < 0 || c >= k {
			continue
		}
		a := &acc[c]
		if a.count == 0 {
			a.minLat, a.maxLat = records[i].StartLat, records[i].StartLat
			a.minLng, a.maxLng = records[i].StartLng, records[i].StartLng
		} else {
			a.minLat = min(a.minLat, records[i].StartLat)
			a.maxLat = max(a.maxLat, records[i].StartLat)
			a.minLng = min(a.minLng, records[i].StartLng)
			a.maxLng = max(a.maxLng, records[i].StartLng)
		}
		a.count++
		a.sevSum += records[i].Severity
		if records[i].Severity > a.sevMax {
			a.sevMax = records[i].Severity
		}
		a.distSum += records[i].DistanceMi
		a.latSum += records[i].StartLat
		a.lngSum += records[i].StartLng
	}

	var out []model.Hotspot
	for c := 0; c < k; c++ {
		a := acc[c]
		if a.count == 0 {
			continue
		}
		n := float64(a.count)
		out = append(out, model.Hotspot{
			Cluster:     c,
			Count:       a.count,
			AvgSeverity: float64(a.sevSum) / n,
			MaxSeverity: a.sevMax,
			AvgDistance: a.distSum / n,
			CenterLat:   a.latSum / n,
			CenterLng:   a.lngSum / n,
			MinLat:      a.minLat,
			MaxLat:      a.maxLat,
			MinLng:      a.minLng,
			MaxLng:      a.maxLng,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Cluster < out[j].Cluster
	})
	return out
}
