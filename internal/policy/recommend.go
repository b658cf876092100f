package policy

import (
	"fmt"
)

// Recommendation is one evidence-backed policy suggestion.
type Recommendation struct {
	Title     string   `json:"title"`
	Rationale string   `json:"rationale"`
	Actions   []string `json:"actions"`
}

// Recommend derives recommendations from the analysis using the given
// thresholds. Data-independent recommendations (hotspot enforcement,
// monitoring) are always included.
func Recommend(a *Analysis, rules Rules) []Recommendation {
	var recs []Recommendation

	if f, ok := a.Feature("Junction"); ok && f.AvgSeverity > rules.JunctionSeverity {
		recs = append(recs, Recommendation{
			Title:     "Junction safety improvements",
			Rationale: fmt.Sprintf("Accidents at junctions average severity %.2f across %d records.", f.AvgSeverity, f.Count),
			Actions: []string{
				"Improve signage and sight lines at high-accident junctions",
				"Upgrade traffic signals and add protected turn phases",
				"Deploy automated traffic management at the worst junctions",
			},
		})
	}

	if f, ok := a.Feature("Traffic_Signal"); ok && f.AvgSeverity > rules.SignalSeverity {
		recs = append(recs, Recommendation{
			Title:     "Traffic signal optimization",
			Rationale: fmt.Sprintf("Signaled intersections average severity %.2f across %d records.", f.AvgSeverity, f.Count),
			Actions: []string{
				"Adopt adaptive signal timing at signaled intersections",
				"Add pedestrian countdown signals",
				"Tune signal plans with real-time congestion data",
			},
		})
	}

	recs = append(recs, Recommendation{
		Title:     "Hotspot-based interventions",
		Rationale: "Spatial clustering concentrates a large share of accidents in a small number of hotspots.",
		Actions: []string{
			"Deploy enhanced police presence in identified hotspots",
			"Install speed cameras and automated enforcement",
			"Prioritize road infrastructure upgrades in high-crash clusters",
		},
	})

	if len(a.Weather) > 0 {
		w := a.Weather[0]
		recs = append(recs, Recommendation{
			Title:     "Weather-related safety",
			Rationale: fmt.Sprintf("Most recorded accidents occurred in %q conditions (%d records, mean severity %.2f).", w.Condition, w.Count, w.AvgSeverity),
			Actions: []string{
				"Reduce speed limits dynamically in adverse weather",
				"Improve drainage on corridors prone to hydroplaning",
				"Pre-position response units ahead of forecast bad weather",
			},
		})
	}

	if len(a.Hours) > 0 {
		peak := a.Hours[0]
		rationale := fmt.Sprintf("Hour %02d:00 records the most accidents (%d).", peak.Hour, peak.Count)
		if peak.Hour >= rules.PeakHourStart && peak.Hour <= rules.PeakHourEnd {
			rationale += " The evening commute window is the critical period."
		}
		recs = append(recs, Recommendation{
			Title:     "Temporal interventions",
			Rationale: rationale,
			Actions: []string{
				"Concentrate patrol and response resources during peak accident hours",
				"Run safety campaigns ahead of high-risk periods",
			},
		})
	}

	recs = append(recs, Recommendation{
		Title:     "Data-driven monitoring",
		Rationale: "Hotspots shift as traffic patterns change; the analysis should be re-run on fresh data.",
		Actions: []string{
			"Re-cluster on a regular cadence to detect new hotspot formation",
			"Track per-hotspot severity trends between runs",
		},
	})

	return recs
}
