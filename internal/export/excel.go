// Package export renders booking listings as spreadsheet downloads.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"equipment-booking-backend/internal/model"
)

const sheetName = "Bookings"

var header = []string{"ID", "Equipment", "User", "Date", "Start", "End", "Status"}

// WriteBookings writes the rows as an xlsx workbook with a bold header row.
func WriteBookings(w io.Writer, rows []model.BookingWithNames) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		end, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheetName, "A1", end, style)
	}

	for i, b := range rows {
		values := []any{b.ID, b.EquipmentName, b.UserName, b.BookingDate, b.StartTime, b.EndTime, b.Status}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	return f.Write(w)
}
