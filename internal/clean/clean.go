// Package clean applies the fixed sequence of filtering and fill rules
// that turns a raw accidents export into an analysis-ready record set.
package clean

import (
	"context"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/dataset"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// Rules holds the tunable cleaning thresholds. Severity membership and
// the rule order are fixed.
type Rules struct {
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

// DefaultRules bounds coordinates to the contiguous United States.
func DefaultRules() Rules {
	return Rules{LatMin: 24, LatMax: 50, LngMin: -125, LngMax: -66}
}

// Result counts surviving records after each rule, in application
// order.
type Result struct {
	Initial       int
	AfterCoords   int
	AfterDedupe   int
	AfterBounds   int
	AfterSeverity int
	AfterTime     int
	Final         int
}

// validSeverities is the accepted severity domain.
var validSeverities = map[int]struct{}{1: {}, 2: {}, 3: {}, 4: {}}

// Clean streams raw rows from r and returns the cleaned record set.
// Rules apply in fixed order: missing coordinates, duplicate IDs
// (first wins), coordinate bounds, severity domain, start-time
// parseability, then fills for distance, city, street, description and
// road-feature flags.
func Clean(ctx context.Context, r *dataset.RawReader, rules Rules) ([]model.Accident, *Result, error) {
	var (
		res     Result
		records []model.Accident
		seen    = make(map[string]struct{})
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, eris.Wrap(err, "clean: cancelled")
		}

		raw, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		res.Initial++

		lat, latErr := strconv.ParseFloat(raw.StartLat, 64)
		lng, lngErr := strconv.ParseFloat(raw.StartLng, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		res.AfterCoords++

		if _, dup := seen[raw.ID]; dup {
			continue
		}
		seen[raw.ID] = struct{}{}
		res.AfterDedupe++

		if lat < rules.LatMin || lat > rules.LatMax || lng < rules.LngMin || lng > rules.LngMax {
			continue
		}
		res.AfterBounds++

		sev, sevErr := strconv.Atoi(raw.Severity)
		if sevErr != nil {
			continue
		}
		if _, ok := validSeverities[sev]; !ok {
			continue
		}
		res.AfterSeverity++

		start := model.ParseEventTime(raw.StartTime)
		if !start.Valid {
			continue
		}
		res.AfterTime++

		records = append(records, build(raw, lat, lng, sev, start))
	}

	res.Final = len(records)
	return records, &res, nil
}

func build(raw *model.RawAccident, lat, lng float64, sev int, start model.EventTime) model.Accident {
	rec := model.Accident{
		ID:               raw.ID,
		Severity:         sev,
		StartTime:        start,
		EndTime:          model.ParseEventTime(raw.EndTime),
		StartLat:         lat,
		StartLng:         lng,
		County:           raw.County,
		State:            raw.State,
		WeatherCondition: raw.WeatherCondition,
		Cluster:          -1,
	}

	// Fills for optional fields.
	if d, err := strconv.ParseFloat(raw.Distance, 64); err == nil {
		rec.DistanceMi = d
	}
	rec.City = fillString(raw.City, "Unknown")
	rec.Street = fillString(raw.Street, "Unknown")
	rec.Description = fillString(raw.Description, "No description")

	// Missing road-feature flags default to false.
	rec.Amenity = parseFlag(raw.Amenity)
	rec.Bump = parseFlag(raw.Bump)
	rec.Crossing = parseFlag(raw.Crossing)
	rec.GiveWay = parseFlag(raw.GiveWay)
	rec.Junction = parseFlag(raw.Junction)
	rec.NoExit = parseFlag(raw.NoExit)
	rec.Railway = parseFlag(raw.Railway)
	rec.Roundabout = parseFlag(raw.Roundabout)
	rec.Station = parseFlag(raw.Station)
	rec.Stop = parseFlag(raw.Stop)
	rec.TrafficCalming = parseFlag(raw.TrafficCalming)
	rec.TrafficSignal = parseFlag(raw.TrafficSignal)
	rec.TurningLoop = parseFlag(raw.TurningLoop)

	return rec
}

func fillString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseFlag(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
