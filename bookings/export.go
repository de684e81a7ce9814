package bookings

import (
	"bytes"
	"fmt"
	"net/http"

	"silpa/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Room", "Date", "Slot", "Username", "Name", "Booked At"}

type exportRow struct {
	RoomID   string
	Date     string
	Slot     string
	Username string
	Name     string
	BookedAt string
}

func (l *Ledger) exportRows(r *http.Request) ([]exportRow, error) {
	bs, err := l.All(r.Context())
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.BookedBy)
	}
	users, err := l.store.UsersByIDs(r.Context(), ids)
	if err != nil {
		return nil, err
	}

	rows := make([]exportRow, 0, len(bs))
	for _, b := range bs {
		row := exportRow{
			RoomID:   b.RoomID,
			Date:     b.Date.Format("2006-01-02"),
			Slot:     b.Slot,
			Username: "unknown",
			Name:     "Unknown",
			BookedAt: b.CreatedAt.Format("2006-01-02 15:04"),
		}
		if u, ok := users[b.BookedBy]; ok {
			row.Username = u.Username
			row.Name = u.Display()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportExcel streams every booking as an .xlsx workbook. Admin only.
func ExportExcel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !requireAdmin(w, r, "export bookings") {
		return
	}
	rows, err := defaultLedger.exportRows(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		values := []string{row.RoomID, row.Date, row.Slot, row.Username, row.Name, row.BookedAt}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := f.Write(w); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to write workbook")
	}
}

// ExportPDF streams every booking as a printable PDF roster. Admin only.
func ExportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !requireAdmin(w, r, "export bookings") {
		return
	}
	rows, err := defaultLedger.exportRows(r)
	if err != nil {
		respondErr(w, err)
		return
	}
	settings, err := defaultLedger.Settings(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, settings.ContestName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d bookings", len(rows)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{25, 25, 15, 35, 55, 35}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range exportHeader {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		values := []string{row.RoomID, row.Date, row.Slot, row.Username, row.Name, row.BookedAt}
		for i, v := range values {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to render pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.pdf"`)
	w.Write(buf.Bytes())
}

// BookingQR returns a QR code image for one booking, for printing on the
// room's door sheet. The payload carries enough to verify at the door.
func BookingQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := defaultLedger.Booking(r.Context(), ps.ByName("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	payload := fmt.Sprintf("booking:%s|room:%s|date:%s|slot:%s",
		booking.ID, booking.RoomID, booking.Date.Format("2006-01-02"), booking.Slot)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to encode qr")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
