package service

import (
	"fmt"

	bookingModel "rentdesk/internal/domains/booking/model"
	"rentdesk/internal/domains/dashboard/model/dto"
	unitModel "rentdesk/internal/domains/unit/model"
	"rentdesk/shared/daterange"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary  = "Summary"
	sheetMonthly  = "Monthly"
	sheetBookings = "Bookings"
)

// Report is a rendered spreadsheet ready to be streamed as an attachment.
type Report struct {
	FileName string
	Content  []byte
}

var bookingHeaders = []string{"ID", "Client", "Unit", "Check In", "Check Out", "Nights", "Status", "Price", "Paid"}

func buildReport(overview dto.OverviewResponse, units []unitModel.Unit, bookings []bookingModel.Booking) (Report, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return Report{}, fmt.Errorf("rename summary sheet: %w", err)
	}

	summary := [][]any{
		{"Group", overview.Scope},
		{"From", overview.From},
		{"To", overview.To},
		{"Currency", overview.Currency},
		{"Total bookings", overview.Stats.TotalBookings},
		{"Total revenue", overview.Stats.TotalRevenue},
		{"Total units", overview.Stats.TotalUnits},
		{"Nights booked", overview.Stats.NightsBooked},
		{"Nights available", overview.Stats.NightsAvailable},
		{"Occupancy", overview.Stats.Occupancy},
	}

	if err := writeRows(f, sheetSummary, summary); err != nil {
		return Report{}, err
	}

	monthly := [][]any{{"Month", "Bookings", "Revenue"}}
	for _, point := range overview.Chart {
		monthly = append(monthly, []any{point.Name, point.Bookings, point.Revenue})
	}

	if _, err := f.NewSheet(sheetMonthly); err != nil {
		return Report{}, fmt.Errorf("create monthly sheet: %w", err)
	}

	if err := writeRows(f, sheetMonthly, monthly); err != nil {
		return Report{}, err
	}

	names := make(map[string]string, len(units))
	for _, unit := range units {
		names[unit.ID] = unit.Name
	}

	rows := [][]any{make([]any, len(bookingHeaders))}
	for i, header := range bookingHeaders {
		rows[0][i] = header
	}

	for _, b := range bookings {
		var paid float64
		if b.PaidAmount != nil {
			paid = *b.PaidAmount
		}

		rows = append(rows, []any{
			b.ID,
			b.ClientName,
			names[b.UnitID],
			daterange.Format(b.CheckIn),
			daterange.Format(b.CheckOut),
			b.Stay().Days(),
			b.Status,
			b.Price,
			paid,
		})
	}

	if _, err := f.NewSheet(sheetBookings); err != nil {
		return Report{}, fmt.Errorf("create bookings sheet: %w", err)
	}

	if err := writeRows(f, sheetBookings, rows); err != nil {
		return Report{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Report{}, fmt.Errorf("write workbook: %w", err)
	}

	return Report{
		FileName: fmt.Sprintf("dashboard_%s_%s_%s.xlsx", overview.Scope, overview.From, overview.To),
		Content:  buf.Bytes(),
	}, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("resolve cell: %w", err)
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
			}
		}
	}

	return nil
}
