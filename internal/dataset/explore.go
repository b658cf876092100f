package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// ColumnMissing reports how many rows left a column blank.
type ColumnMissing struct {
	Column  string
	Missing int
}

// Summary describes the shape and coverage of a source export.
type Summary struct {
	Path           string
	Rows           int
	Columns        []string
	ColumnTypes    map[string]string
	Missing        []ColumnMissing // sorted by count desc
	SeverityLevels []int
	States         int
	Cities         int
	MinTime        model.EventTime
	MaxTime        model.EventTime
	LatMin, LatMax float64
	LngMin, LngMax float64
}

// typeInferenceRows caps how many rows participate in column type
// inference; the remainder only feed the counters.
const typeInferenceRows = 1000

// Summarize streams the CSV at path and computes dataset-level
// statistics without holding rows in memory.
func Summarize(path string, topMissing int) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read header")
	}
	columns := make([]string, len(header))
	copy(columns, header)

	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}

	s := &Summary{
		Path:        path,
		Columns:     columns,
		ColumnTypes: make(map[string]string, len(columns)),
		LatMin:      180,
		LatMax:      -180,
		LngMin:      180,
		LngMax:      -180,
	}

	missing := make([]int, len(columns))
	severities := map[int]struct{}{}
	states := map[string]struct{}{}
	cities := map[string]struct{}{}
	types := make([]string, len(columns))

	sevIdx, ok := colIndex(idx, "Severity")
	if !ok {
		return nil, eris.New("dataset: missing Severity column")
	}
	stateIdx, _ := colIndex(idx, "State")
	cityIdx, _ := colIndex(idx, "City")
	timeIdx, _ := colIndex(idx, "Start_Time")
	latIdx, latOK := colIndex(idx, "Start_Lat")
	lngIdx, lngOK := colIndex(idx, "Start_Lng")
	if !latOK || !lngOK {
		return nil, eris.New("dataset: missing Start_Lat/Start_Lng columns")
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "dataset: read row")
		}
		s.Rows++

		for i, v := range row {
			if i >= len(columns) {
				break
			}
			if strings.TrimSpace(v) == "" {
				missing[i]++
			} else if s.Rows <= typeInferenceRows {
				types[i] = refineType(types[i], v)
			}
		}

		if sev, err := strconv.Atoi(row[sevIdx]); err == nil {
			severities[sev] = struct{}{}
		}
		if stateIdx >= 0 && row[stateIdx] != "" {
			states[row[stateIdx]] = struct{}{}
		}
		if cityIdx >= 0 && row[cityIdx] != "" {
			cities[row[cityIdx]] = struct{}{}
		}
		if timeIdx >= 0 {
			if t := model.ParseEventTime(row[timeIdx]); t.Valid {
				if !s.MinTime.Valid || t.Before(s.MinTime.Time) {
					s.MinTime = t
				}
				if !s.MaxTime.Valid || t.After(s.MaxTime.Time) {
					s.MaxTime = t
				}
			}
		}
		if lat, err := strconv.ParseFloat(row[latIdx], 64); err == nil {
			if lat < s.LatMin {
				s.LatMin = lat
			}
			if lat > s.LatMax {
				s.LatMax = lat
			}
		}
		if lng, err := strconv.ParseFloat(row[lngIdx], 64); err == nil {
			if lng < s.LngMin {
				s.LngMin = lng
			}
			if lng > s.LngMax {
				s.LngMax = lng
			}
		}
	}

	for i, c := range columns {
		if types[i] == "" {
			types[i] = "string"
		}
		s.ColumnTypes[c] = types[i]
		s.Missing = append(s.Missing, ColumnMissing{Column: c, Missing: missing[i]})
	}
	sort.SliceStable(s.Missing, func(i, j int) bool {
		return s.Missing[i].Missing > s.Missing[j].Missing
	})
	if topMissing > 0 && len(s.Missing) > topMissing {
		s.Missing = s.Missing[:topMissing]
	}

	for sev := range severities {
		s.SeverityLevels = append(s.SeverityLevels, sev)
	}
	sort.Ints(s.SeverityLevels)
	s.States = len(states)
	s.Cities = len(cities)

	return s, nil
}

func colIndex(idx map[string]int, name string) (int, bool) {
	i, ok := idx[name]
	if !ok {
		return -1, false
	}
	return i, true
}

// refineType narrows a column's inferred type as values are seen.
// Order of generality: bool -> int -> float -> time -> string.
func refineType(current, value string) string {
	if current == "string" {
		return current
	}

	var inferred string
	switch {
	case value == "True" || value == "False" || value == "true" || value == "false":
		inferred = "bool"
	default:
		if _, err := strconv.Atoi(value); err == nil {
			inferred = "int"
		} else if _, err := strconv.ParseFloat(value, 64); err == nil {
			inferred = "float"
		} else if t := model.ParseEventTime(value); t.Valid {
			inferred = "time"
		} else {
			inferred = "string"
		}
	}

	if current == "" || current == inferred {
		return inferred
	}
	// int widens to float; anything else conflicting becomes string.
	if (current == "int" && inferred == "float") || (current == "float" && inferred == "int") {
		return "float"
	}
	return "string"
}

// Format renders the summary as a human-readable report.
func (s *Summary) Format() string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "# Dataset Exploration: %s\n\n", s.Path)

	b.WriteString("## Shape\n")
	p.Fprintf(&b, "- Total records: %d\n", s.Rows)
	p.Fprintf(&b, "- Total columns: %d\n\n", len(s.Columns))

	b.WriteString("## Column Types\n")
	for _, c := range s.Columns {
		fmt.Fprintf(&b, "- %s: %s\n", c, s.ColumnTypes[c])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Missing Values (top %d)\n", len(s.Missing))
	for _, m := range s.Missing {
		p.Fprintf(&b, "- %s: %d\n", m.Column, m.Missing)
	}
	b.WriteString("\n")

	b.WriteString("## Key Statistics\n")
	fmt.Fprintf(&b, "- Severity levels: %v\n", s.SeverityLevels)
	p.Fprintf(&b, "- States represented: %d\n", s.States)
	p.Fprintf(&b, "- Cities: %d\n", s.Cities)
	if s.MinTime.Valid && s.MaxTime.Valid {
		fmt.Fprintf(&b, "- Date range: %s to %s\n",
			s.MinTime.Format("2006-01-02 15:04:05"),
			s.MaxTime.Format("2006-01-02 15:04:05"))
	}
	b.WriteString("\n")

	b.WriteString("## Geographic Coverage\n")
	fmt.Fprintf(&b, "- Latitude range: %.2f to %.2f\n", s.LatMin, s.LatMax)
	fmt.Fprintf(&b, "- Longitude range: %.2f to %.2f\n", s.LngMin, s.LngMax)

	return b.String()
}
