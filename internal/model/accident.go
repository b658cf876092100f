package model

import (
	"time"
)

// Timestamp layouts seen in the accidents export. Some rows carry
// fractional seconds, most do not.
var eventTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339,
}

// EventTime is a timestamp column that treats blank or unparseable
// values as missing instead of failing the row decode.
type EventTime struct {
	time.Time
	Valid bool
}

// NewEventTime returns a valid EventTime for t.
func NewEventTime(t time.Time) EventTime {
	return EventTime{Time: t, Valid: true}
}

// ParseEventTime parses s against the known layouts. Blank or
// unrecognized input yields an invalid (missing) EventTime.
func ParseEventTime(s string) EventTime {
	if s == "" {
		return EventTime{}
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return EventTime{Time: t, Valid: true}
		}
	}
	return EventTime{}
}

// UnmarshalText implements encoding.TextUnmarshaler for csvutil.
func (t *EventTime) UnmarshalText(b []byte) error {
	*t = ParseEventTime(string(b))
	return nil
}

// MarshalText implements encoding.TextMarshaler for csvutil. Missing
// values serialize as the empty string.
func (t EventTime) MarshalText() ([]byte, error) {
	if !t.Valid {
		return nil, nil
	}
	return []byte(t.Format("2006-01-02 15:04:05")), nil
}

// RoadFeatures lists the boolean road-feature flag columns in the
// order they appear in the source export.
var RoadFeatures = []string{
	"Amenity", "Bump", "Crossing", "Give_Way", "Junction",
	"No_Exit", "Railway", "Roundabout", "Station", "Stop",
	"Traffic_Calming", "Traffic_Signal", "Turning_Loop",
}

// RawAccident is one row of the source export before cleaning. All
// fields are kept as strings so that missing or malformed cells reach
// the cleaning rules instead of failing the decode.
type RawAccident struct {
	ID               string `csv:"ID"`
	Severity         string `csv:"Severity"`
	StartTime        string `csv:"Start_Time"`
	EndTime          string `csv:"End_Time"`
	StartLat         string `csv:"Start_Lat"`
	StartLng         string `csv:"Start_Lng"`
	Distance         string `csv:"Distance(mi)"`
	Description      string `csv:"Description"`
	Street           string `csv:"Street"`
	City             string `csv:"City"`
	County           string `csv:"County"`
	State            string `csv:"State"`
	WeatherCondition string `csv:"Weather_Condition"`
	Amenity          string `csv:"Amenity"`
	Bump             string `csv:"Bump"`
	Crossing         string `csv:"Crossing"`
	GiveWay          string `csv:"Give_Way"`
	Junction         string `csv:"Junction"`
	NoExit           string `csv:"No_Exit"`
	Railway          string `csv:"Railway"`
	Roundabout       string `csv:"Roundabout"`
	Station          string `csv:"Station"`
	Stop             string `csv:"Stop"`
	TrafficCalming   string `csv:"Traffic_Calming"`
	TrafficSignal    string `csv:"Traffic_Signal"`
	TurningLoop      string `csv:"Turning_Loop"`
}

// Accident is a cleaned, typed accident record.
type Accident struct {
	ID               string    `csv:"ID" json:"id"`
	Severity         int       `csv:"Severity" json:"severity"`
	StartTime        EventTime `csv:"Start_Time" json:"start_time"`
	EndTime          EventTime `csv:"End_Time" json:"end_time"`
	StartLat         float64   `csv:"Start_Lat" json:"start_lat"`
	StartLng         float64   `csv:"Start_Lng" json:"start_lng"`
	DistanceMi       float64   `csv:"Distance(mi)" json:"distance_mi"`
	Description      string    `csv:"Description" json:"description"`
	Street           string    `csv:"Street" json:"street"`
	City             string    `csv:"City" json:"city"`
	County           string    `csv:"County" json:"county"`
	State            string    `csv:"State" json:"state"`
	WeatherCondition string    `csv:"Weather_Condition" json:"weather_condition"`
	Amenity          bool      `csv:"Amenity" json:"amenity"`
	Bump             bool      `csv:"Bump" json:"bump"`
	Crossing         bool      `csv:"Crossing" json:"crossing"`
	GiveWay          bool      `csv:"Give_Way" json:"give_way"`
	Junction         bool      `csv:"Junction" json:"junction"`
	NoExit           bool      `csv:"No_Exit" json:"no_exit"`
	Railway          bool      `csv:"Railway" json:"railway"`
	Roundabout       bool      `csv:"Roundabout" json:"roundabout"`
	Station          bool      `csv:"Station" json:"station"`
	Stop             bool      `csv:"Stop" json:"stop"`
	TrafficCalming   bool      `csv:"Traffic_Calming" json:"traffic_calming"`
	TrafficSignal    bool      `csv:"Traffic_Signal" json:"traffic_signal"`
	TurningLoop      bool      `csv:"Turning_Loop" json:"turning_loop"`

	// Cluster is the hotspot label assigned by the clustering stage.
	// -1 means unassigned; it is serialized separately from the base
	// record columns.
	Cluster int `csv:"-" json:"cluster"`
}

// Flag returns the named road-feature flag.
func (a *Accident) Flag(name string) bool {
	switch name {
	case "Amenity":
		return a.Amenity
	case "Bump":
		return a.Bump
	case "Crossing":
		return a.Crossing
	case "Give_Way":
		return a.GiveWay
	case "Junction":
		return a.Junction
	case "No_Exit":
		return a.NoExit
	case "Railway":
		return a.Railway
	case "Roundabout":
		return a.Roundabout
	case "Station":
		return a.Station
	case "Stop":
		return a.Stop
	case "Traffic_Calming":
		return a.TrafficCalming
	case "Traffic_Signal":
		return a.TrafficSignal
	case "Turning_Loop":
		return a.TurningLoop
	}
	return false
}
