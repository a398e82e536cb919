package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/M1XZG/vrcx-query-tools/internal/report"
)

// Column headers shared by the CSV and spreadsheet writers.
var (
	HourlyHeader  = []string{"Date", "Hour", "Instance", "World Name", "Joins", "Leaves", "Net Change", "Unique People"}
	AverageHeader = []string{"Hour", "Avg Joins", "Avg Leaves", "Avg Unique People", "Sample Days"}
	WeekdayHeader = []string{"Weekday", "Avg Unique People", "Sample Days"}
	WeeklyHeader  = []string{"Week Start", "Date", "Weekday", "Unique People"}
)

// HourLabel renders an hour-of-day as it appears in reports, e.g. "09:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

func formatAvg(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteHourlyCSV writes hourly buckets to path.
func WriteHourlyCSV(path string, buckets []report.HourlyBucket) error {
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{
			b.Date,
			HourLabel(b.Hour),
			b.Location,
			b.WorldName,
			strconv.Itoa(b.Joins),
			strconv.Itoa(b.Leaves),
			strconv.Itoa(b.NetChange),
			strconv.Itoa(b.UniquePeople),
		})
	}
	return writeCSV(path, HourlyHeader, rows)
}

// ReadHourlyCSV parses a file written by WriteHourlyCSV back into buckets.
func ReadHourlyCSV(path string) ([]report.HourlyBucket, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		return nil, err
	}
	var buckets []report.HourlyBucket
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		b, err := parseHourlyRecord(rec)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

func parseHourlyRecord(rec []string) (report.HourlyBucket, error) {
	var b report.HourlyBucket
	if len(rec) != len(HourlyHeader) {
		return b, fmt.Errorf("expected %d fields, got %d", len(HourlyHeader), len(rec))
	}
	hourStr, ok := strings.CutSuffix(rec[1], ":00")
	if !ok {
		return b, fmt.Errorf("malformed hour %q", rec[1])
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return b, fmt.Errorf("malformed hour %q: %w", rec[1], err)
	}
	b.Date = rec[0]
	b.Hour = hour
	b.Location = rec[2]
	b.WorldName = rec[3]
	for i, dst := range []*int{&b.Joins, &b.Leaves, &b.NetChange, &b.UniquePeople} {
		n, err := strconv.Atoi(rec[4+i])
		if err != nil {
			return b, fmt.Errorf("field %q: %w", HourlyHeader[4+i], err)
		}
		*dst = n
	}
	return b, nil
}

// WriteAverageCSV writes hourly averages to path. Hours with no sample
// days are written with empty average columns rather than zeros.
func WriteAverageCSV(path string, averages []report.HourAverage) error {
	rows := make([][]string, 0, len(averages))
	for _, a := range averages {
		row := []string{HourLabel(a.Hour), "", "", "", strconv.Itoa(a.Samples)}
		if a.Samples > 0 {
			row[1] = formatAvg(a.AvgJoins)
			row[2] = formatAvg(a.AvgLeaves)
			row[3] = formatAvg(a.AvgUnique)
		}
		rows = append(rows, row)
	}
	return writeCSV(path, AverageHeader, rows)
}

// WriteWeekdayCSV writes day-of-week averages to path.
func WriteWeekdayCSV(path string, averages []report.WeekdayAverage) error {
	rows := make([][]string, 0, len(averages))
	for _, a := range averages {
		rows = append(rows, []string{
			a.Weekday.String(),
			formatAvg(a.AvgUnique),
			strconv.Itoa(a.Samples),
		})
	}
	return writeCSV(path, WeekdayHeader, rows)
}

// WriteWeeklyCSV writes a weekly breakdown to path.
func WriteWeeklyCSV(path string, weeks []report.WeekBucket) error {
	rows := make([][]string, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, []string{
			w.WeekStart,
			w.Date,
			w.Weekday.String(),
			strconv.Itoa(w.UniquePeople),
		})
	}
	return writeCSV(path, WeeklyHeader, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
