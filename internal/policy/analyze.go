// Package policy derives descriptive statistics from cleaned accident
// records and turns them into evidence-based recommendations.
package policy

import (
	"sort"
	"time"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// FeatureImpact is the severity cross-tabulation for one road-feature
// flag.
type FeatureImpact struct {
	Feature     string  `json:"feature"`
	Count       int     `json:"count"`
	Share       float64 `json:"share"`
	AvgSeverity float64 `json:"avg_severity"`
}

// HourStats aggregates accidents by hour of day.
type HourStats struct {
	Hour        int     `json:"hour"`
	Count       int     `json:"count"`
	AvgSeverity float64 `json:"avg_severity"`
}

// DayStats aggregates accidents by day of week.
type DayStats struct {
	Day         time.Weekday `json:"day"`
	Count       int          `json:"count"`
	AvgSeverity float64      `json:"avg_severity"`
}

// StateStats aggregates accidents by state.
type StateStats struct {
	State       string  `json:"state"`
	Count       int     `json:"count"`
	AvgSeverity float64 `json:"avg_severity"`
	AvgDistance float64 `json:"avg_distance"`
}

// WeatherStats aggregates accidents by weather condition.
type WeatherStats struct {
	Condition   string  `json:"condition"`
	Count       int     `json:"count"`
	AvgSeverity float64 `json:"avg_severity"`
}

// Analysis bundles every cross-tabulation the recommendation rules
// consume.
type Analysis struct {
	Records  int             `json:"records"`
	Features []FeatureImpact `json:"features"` // sorted by avg severity desc
	Hours    []HourStats     `json:"hours"`    // sorted by count desc
	Days     []DayStats      `json:"days"`     // sorted by count desc
	States   []StateStats    `json:"states"`   // sorted by count desc
	Weather  []WeatherStats  `json:"weather"`  // sorted by count desc
}

// Analyze computes every cross-tabulation in one pass over records.
func Analyze(records []model.Accident) *Analysis {
	a := &Analysis{Records: len(records)}

	featCount := map[string]int{}
	featSev := map[string]int{}
	var hourCount, hourSev [24]int
	var dayCount, daySev [7]int
	stateAgg := map[string]*StateStats{}
	weatherAgg := map[string]*WeatherStats{}

	for i := range records {
		rec := &records[i]

		for _, f := range model.RoadFeatures {
			if rec.Flag(f) {
				featCount[f]++
				featSev[f] += rec.Severity
			}
		}

		if rec.StartTime.Valid {
			h := rec.StartTime.Hour()
			hourCount[h]++
			hourSev[h] += rec.Severity
			d := int(rec.StartTime.Weekday())
			dayCount[d]++
			daySev[d] += rec.Severity
		}

		if rec.State != "" {
			st := stateAgg[rec.State]
			if st == nil {
				st = &StateStats{State: rec.State}
				stateAgg[rec.State] = st
			}
			st.Count++
			st.AvgSeverity += float64(rec.Severity)
			st.AvgDistance += rec.DistanceMi
		}

		if rec.WeatherCondition != "" {
			w := weatherAgg[rec.WeatherCondition]
			if w == nil {
				w = &WeatherStats{Condition: rec.WeatherCondition}
				weatherAgg[rec.WeatherCondition] = w
			}
			w.Count++
			w.AvgSeverity += float64(rec.Severity)
		}
	}

	for _, f := range model.RoadFeatures {
		c := featCount[f]
		if c == 0 {
			continue
		}
		a.Features = append(a.Features, FeatureImpact{
			Feature:     f,
			Count:       c,
			Share:       float64(c) / float64(len(records)),
			AvgSeverity: float64(featSev[f]) / float64(c),
		})
	}
	sort.SliceStable(a.Features, func(i, j int) bool {
		return a.Features[i].AvgSeverity > a.Features[j].AvgSeverity
	})

	for h := 0; h < 24; h++ {
		if hourCount[h] == 0 {
			continue
		}
		a.Hours = append(a.Hours, HourStats{
			Hour:        h,
			Count:       hourCount[h],
			AvgSeverity: float64(hourSev[h]) / float64(hourCount[h]),
		})
	}
	sort.SliceStable(a.Hours, func(i, j int) bool {
		return a.Hours[i].Count > a.Hours[j].Count
	})

	for d := 0; d < 7; d++ {
		if dayCount[d] == 0 {
			continue
		}
		a.Days = append(a.Days, DayStats{
			Day:         time.Weekday(d),
			Count:       dayCount[d],
			AvgSeverity: float64(daySev[d]) / float64(dayCount[d]),
		})
	}
	sort.SliceStable(a.Days, func(i, j int) bool {
		return a.Days[i].Count > a.Days[j].Count
	})

	for _, st := range stateAgg {
		st.AvgSeverity /= float64(st.Count)
		st.AvgDistance /= float64(st.Count)
		a.States = append(a.States, *st)
	}
	sort.SliceStable(a.States, func(i, j int) bool {
		if a.States[i].Count != a.States[j].Count {
			return a.States[i].Count > a.States[j].Count
		}
		return a.States[i].State < a.States[j].State
	})

	for _, w := range weatherAgg {
		w.AvgSeverity /= float64(w.Count)
		a.Weather = append(a.Weather, *w)
	}
	sort.SliceStable(a.Weather, func(i, j int) bool {
		if a.Weather[i].Count != a.Weather[j].Count {
			return a.Weather[i].Count > a.Weather[j].Count
		}
		return a.Weather[i].Condition < a.Weather[j].Condition
	})

	return a
}

// Feature returns the named feature impact, if present.
func (a *Analysis) Feature(name string) (FeatureImpact, bool) {
	for _, f := range a.Features {
		if f.Feature == name {
			return f, true
		}
	}
	return FeatureImpact{}, false
}
