package reports

import (
	"strings"
	"time"
)

// TitleTimeLayout formats the report date in titles.
const TitleTimeLayout = "2006-01-02 15:04:05"

// Title describes who generated the report and when. A nil report, or one
// without user and date, is titled "Report".
func Title(r *Report) string {
	var b strings.Builder
	if r != nil && r.User != nil {
		b.WriteString(" by " + *r.User)
	}
	if r != nil && r.Date != nil {
		b.WriteString(" at " + r.Date.In(time.Local).Format(TitleTimeLayout))
	}
	if b.Len() == 0 {
		return "Report"
	}
	return "Report generated" + b.String()
}
