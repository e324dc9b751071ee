package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
)

// Workbook column order: employee code, date, status, start, end, memo.
// The first row is treated as a header.
const workbookColumns = 6

// ParseWorkbook reads bulk rows from an xlsx upload. Rows that cannot be
// parsed become conflicts instead of aborting the whole file, mirroring the
// importer's partial-failure policy.
func ParseWorkbook(r io.Reader) ([]domain.ImportRow, []domain.ImportConflict, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rawRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]domain.ImportRow, 0, len(rawRows))
	conflicts := make([]domain.ImportConflict, 0)

	for i, raw := range rawRows {
		if i == 0 {
			continue // header
		}
		rowIndex := i + 1 // 1-based, as shown in the spreadsheet

		if len(raw) < workbookColumns-1 {
			conflicts = append(conflicts, domain.ImportConflict{
				RowIndex: rowIndex,
				Reason:   fmt.Sprintf("expected at least %d columns, got %d", workbookColumns-1, len(raw)),
			})
			continue
		}

		cell := func(j int) string {
			if j < len(raw) {
				return strings.TrimSpace(raw[j])
			}
			return ""
		}

		date, err := time.Parse("2006-01-02", cell(1))
		if err != nil {
			conflicts = append(conflicts, domain.ImportConflict{
				RowIndex:     rowIndex,
				EmployeeCode: cell(0),
				Reason:       fmt.Sprintf("bad date %q, want YYYY-MM-DD", cell(1)),
			})
			continue
		}

		start, err := ParseClock(cell(3))
		if err != nil {
			conflicts = append(conflicts, domain.ImportConflict{
				RowIndex:     rowIndex,
				EmployeeCode: cell(0),
				Reason:       fmt.Sprintf("bad start time %q", cell(3)),
			})
			continue
		}
		end, err := ParseClock(cell(4))
		if err != nil {
			conflicts = append(conflicts, domain.ImportConflict{
				RowIndex:     rowIndex,
				EmployeeCode: cell(0),
				Reason:       fmt.Sprintf("bad end time %q", cell(4)),
			})
			continue
		}

		rows = append(rows, domain.ImportRow{
			RowIndex:     rowIndex,
			EmployeeCode: cell(0),
			Date:         date,
			Status:       cell(2),
			StartTime:    start,
			EndTime:      end,
			Memo:         cell(5),
		})
	}

	return rows, conflicts, nil
}

// ParseClock accepts "9:00" / "09:00" clock strings or plain decimal hours
// and returns decimal hours.
func ParseClock(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}
	if h, m, ok := strings.Cut(s, ":"); ok {
		hours, err := strconv.Atoi(h)
		if err != nil {
			return 0, err
		}
		minutes, err := strconv.Atoi(m)
		if err != nil {
			return 0, err
		}
		if minutes < 0 || minutes >= 60 {
			return 0, fmt.Errorf("minutes out of range: %d", minutes)
		}
		return float64(hours) + float64(minutes)/60, nil
	}
	return strconv.ParseFloat(s, 64)
}
