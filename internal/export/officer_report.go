// Package export encodes officer verification reports as CSV or XLSX for
// download by administrators.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"civicfix/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the report header row.
var columns = []string{
	"Name",
	"Email",
	"Phone",
	"Department",
	"Designation",
	"Account Status",
	"Verified",
	"Screening Score",
	"Screening Result",
	"Screening Reason",
	"Document URL",
	"Registered At",
}

// Writer wraps csv.Writer for exporting officer records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the report header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOfficers converts a batch of officer records to CSV rows and writes them.
func (w *Writer) WriteOfficers(officers []domain.User) error {
	for i := range officers {
		if err := w.csv.Write(officerToRow(&officers[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func officerToRow(u *domain.User) []string {
	return []string{
		u.Name,
		u.Email,
		u.Phone,
		u.Department,
		u.Designation,
		string(u.AccountStatus),
		fmt.Sprintf("%t", u.IsVerified),
		fmt.Sprintf("%.2f", u.AIScore),
		string(u.AIResult),
		u.AIReason,
		u.DocumentURL,
		u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// OfficerReportCSV encodes the officer verification report as BOM-prefixed CSV.
func OfficerReportCSV(officers []domain.User) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.Write(BOM); err != nil {
		return nil, err
	}

	w := NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, err
	}
	if err := w.WriteOfficers(officers); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OfficerReportXLSX encodes the officer verification report as an Excel
// workbook with a single sheet.
func OfficerReportXLSX(officers []domain.User) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Officers"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r := range officers {
		row := officerToRow(&officers[r])
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
