package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/M1XZG/vrcx-query-tools/internal/report"
)

const headerFill = "#4472C4"

// WriteHourlyXLSX writes hourly buckets as a styled workbook.
func WriteHourlyXLSX(path string, buckets []report.HourlyBucket) error {
	rows := make([][]any, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []any{
			b.Date, HourLabel(b.Hour), b.Location, b.WorldName,
			b.Joins, b.Leaves, b.NetChange, b.UniquePeople,
		})
	}
	return writeWorkbook(path, "Hourly Attendance", HourlyHeader,
		[]float64{12, 8, 40, 35, 10, 10, 12, 15}, rows)
}

// WriteAverageXLSX writes hourly averages as a styled workbook. Hours
// with no sample days get empty average cells.
func WriteAverageXLSX(path string, averages []report.HourAverage) error {
	rows := make([][]any, 0, len(averages))
	for _, a := range averages {
		row := []any{HourLabel(a.Hour), nil, nil, nil, a.Samples}
		if a.Samples > 0 {
			row[1] = a.AvgJoins
			row[2] = a.AvgLeaves
			row[3] = a.AvgUnique
		}
		rows = append(rows, row)
	}
	return writeWorkbook(path, "Hourly Averages", AverageHeader,
		[]float64{8, 12, 12, 18, 14}, rows)
}

// WriteWeekdayXLSX writes day-of-week averages as a styled workbook.
func WriteWeekdayXLSX(path string, averages []report.WeekdayAverage) error {
	rows := make([][]any, 0, len(averages))
	for _, a := range averages {
		rows = append(rows, []any{a.Weekday.String(), a.AvgUnique, a.Samples})
	}
	return writeWorkbook(path, "Day of Week", WeekdayHeader,
		[]float64{12, 18, 14}, rows)
}

// WriteWeeklyXLSX writes a weekly breakdown as a styled workbook.
func WriteWeeklyXLSX(path string, weeks []report.WeekBucket) error {
	rows := make([][]any, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, []any{w.WeekStart, w.Date, w.Weekday.String(), w.UniquePeople})
	}
	return writeWorkbook(path, "Weekly Attendance", WeeklyHeader,
		[]float64{12, 12, 12, 15}, rows)
}

func writeWorkbook(path, sheet string, header []string, widths []float64, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{headerFill},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}
	}

	for i := range header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("convert column number: %w", err)
		}
		if i < len(widths) {
			if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
				return fmt.Errorf("set column width: %w", err)
			}
		}
	}

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
