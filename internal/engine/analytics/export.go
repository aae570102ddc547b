package analytics

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

var exportHeader = []string{"Link Title", "URL", "Clicks", "Date", "Country", "Referrer"}

// ExportRow is one (link, date, country, referrer) group. Date, Country and
// Referrer are empty for links with no clicks in range.
type ExportRow struct {
	LinkTitle string
	LinkURL   string
	Clicks    int
	Date      string
	Country   string
	Referrer  string
}

func ExportFilename(rangeToken string) string {
	return "analytics-" + rangeToken + ".csv"
}

// WriteCSV renders rows with string columns always quoted and numeric/date
// columns bare. encoding/csv only quotes on demand, so fields are written here.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(strings.Join(exportHeader, ","))
	for _, row := range rows {
		bw.WriteByte('\n')
		bw.WriteString(quote(row.LinkTitle))
		bw.WriteByte(',')
		bw.WriteString(quote(row.LinkURL))
		bw.WriteByte(',')
		bw.WriteString(strconv.Itoa(row.Clicks))
		bw.WriteByte(',')
		bw.WriteString(row.Date)
		bw.WriteByte(',')
		bw.WriteString(quote(row.Country))
		bw.WriteByte(',')
		bw.WriteString(quote(row.Referrer))
	}

	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
