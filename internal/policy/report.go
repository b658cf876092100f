package policy

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// reportTopN caps how many rows each cross-tabulation prints.
const reportTopN = 15

// FormatReport renders the analysis and recommendations as a
// human-readable report.
func FormatReport(a *Analysis, recs []Recommendation) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("# Policy Analysis Report\n\n")
	p.Fprintf(&b, "Records analyzed: %d\n\n", a.Records)

	b.WriteString("## Road Features by Average Severity\n")
	for _, f := range a.Features {
		p.Fprintf(&b, "- %s: severity %.2f, %d records (%.1f%%)\n",
			f.Feature, f.AvgSeverity, f.Count, f.Share*100)
	}
	b.WriteString("\n")

	b.WriteString("## Peak Accident Hours\n")
	for i, h := range a.Hours {
		if i >= reportTopN {
			break
		}
		p.Fprintf(&b, "- %02d:00: %d accidents, avg severity %.2f\n",
			h.Hour, h.Count, h.AvgSeverity)
	}
	b.WriteString("\n")

	b.WriteString("## Accidents by Day of Week\n")
	for _, d := range a.Days {
		p.Fprintf(&b, "- %s: %d accidents, avg severity %.2f\n",
			d.Day, d.Count, d.AvgSeverity)
	}
	b.WriteString("\n")

	b.WriteString("## Top States by Accident Count\n")
	for i, s := range a.States {
		if i >= reportTopN {
			break
		}
		p.Fprintf(&b, "- %s: %d accidents, avg severity %.2f, avg impact distance %.2f mi\n",
			s.State, s.Count, s.AvgSeverity, s.AvgDistance)
	}
	b.WriteString("\n")

	b.WriteString("## Weather Conditions\n")
	for i, w := range a.Weather {
		if i >= reportTopN {
			break
		}
		p.Fprintf(&b, "- %s: %d accidents, avg severity %.2f\n",
			w.Condition, w.Count, w.AvgSeverity)
	}
	b.WriteString("\n")

	b.WriteString("## Recommendations\n")
	for i, r := range recs {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, strings.ToUpper(r.Title))
		fmt.Fprintf(&b, "   %s\n", r.Rationale)
		for _, action := range r.Actions {
			fmt.Fprintf(&b, "   - %s\n", action)
		}
	}

	return b.String()
}
