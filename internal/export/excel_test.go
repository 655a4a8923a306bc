package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"equipment-booking-backend/internal/model"
)

func TestWriteBookings(t *testing.T) {
	rows := []model.BookingWithNames{
		{
			Booking: model.Booking{
				ID:          1,
				BookingDate: "2025-03-10",
				StartTime:   "14:00",
				EndTime:     "15:00",
				Status:      model.BookingActive,
			},
			UserName:      "Ada Lovelace",
			EquipmentName: "Pool table",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, header, got[0])
	assert.Equal(t, []string{"1", "Pool table", "Ada Lovelace", "2025-03-10", "14:00", "15:00", "active"}, got[1])
}

func TestWriteBookingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
