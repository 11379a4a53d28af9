package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"retail-sales-api/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportFormat is a downloadable document type
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ErrUnsupportedExportFormat is returned for an unknown format parameter
var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// ExportSheetName is the worksheet holding exported rows
const ExportSheetName = "Transactions"

// ExportHeaders are the column titles of every export, in column order
var ExportHeaders = []string{
	"Transaction ID",
	"Date",
	"Customer ID",
	"Customer Name",
	"Phone",
	"Gender",
	"Age",
	"Region",
	"Product Category",
	"Tags",
	"Amount",
	"Final Amount",
	"Payment Method",
	"Status",
	"Delivery Type",
	"Store Location",
}

// ParseExportFormat resolves the format parameter; empty means CSV
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedExportFormat, raw)
	}
}

type exportService struct{}

// NewExportService creates a new export service
func NewExportService() ExportServiceInterface {
	return &exportService{}
}

func (s *exportService) NewWriter(format ExportFormat, w io.Writer) (TransactionWriter, error) {
	switch format {
	case FormatCSV:
		return newCSVWriter(w), nil
	case FormatXLSX:
		return newXLSXWriter(w)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExportFormat, format)
	}
}

func (s *exportService) ContentType(format ExportFormat) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Filename returns transactions_<unix millis>.<ext>
func (s *exportService) Filename(format ExportFormat, now time.Time) string {
	return fmt.Sprintf("transactions_%d.%s", now.UnixMilli(), format)
}

// csvWriter emits one line per record with every text field quoted.
// Lines are separated by "\n" and the document carries no trailing newline.
type csvWriter struct {
	w *bufio.Writer
}

func newCSVWriter(w io.Writer) *csvWriter {
	cw := &csvWriter{w: bufio.NewWriterSize(w, 64*1024)}
	cw.w.WriteString(strings.Join(ExportHeaders, ","))
	return cw
}

func (cw *csvWriter) Write(t *models.Transaction) error {
	fields := []string{
		strconv.FormatInt(t.TransactionID, 10),
		t.Date.UTC().Format(time.DateOnly),
		quote(t.CustomerID),
		quote(t.CustomerName),
		quote(t.Phone),
		quote(t.Gender),
		strconv.Itoa(t.Age),
		quote(t.Region),
		quote(t.ProductCategory),
		quote(t.Tags.Join(",")),
		t.Amount.String(),
		t.FinalAmount.String(),
		quote(t.PaymentMethod),
		quote(t.Status),
		quote(t.DeliveryType),
		quote(t.StoreLocation),
	}

	if err := cw.w.WriteByte('\n'); err != nil {
		return err
	}
	_, err := cw.w.WriteString(strings.Join(fields, ","))
	return err
}

func (cw *csvWriter) Close() error {
	return cw.w.Flush()
}

func (cw *csvWriter) Abort() {}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// xlsxWriter streams rows into a single worksheet and writes the workbook on Close
type xlsxWriter struct {
	out    io.Writer
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

func newXLSXWriter(w io.Writer) (*xlsxWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	sw, err := f.NewStreamWriter(ExportSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(ExportHeaders))
	for i, h := range ExportHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	return &xlsxWriter{out: w, file: f, stream: sw, row: 1}, nil
}

func (xw *xlsxWriter) Write(t *models.Transaction) error {
	xw.row++
	cell, err := excelize.CoordinatesToCellName(1, xw.row)
	if err != nil {
		return err
	}

	return xw.stream.SetRow(cell, []interface{}{
		t.TransactionID,
		t.Date.UTC().Format(time.DateOnly),
		t.CustomerID,
		t.CustomerName,
		t.Phone,
		t.Gender,
		t.Age,
		t.Region,
		t.ProductCategory,
		t.Tags.Join(","),
		t.Amount.InexactFloat64(),
		t.FinalAmount.InexactFloat64(),
		t.PaymentMethod,
		t.Status,
		t.DeliveryType,
		t.StoreLocation,
	})
}

func (xw *xlsxWriter) Abort() {
	xw.file.Close()
}

func (xw *xlsxWriter) Close() error {
	defer xw.file.Close()

	if err := xw.stream.Flush(); err != nil {
		return fmt.Errorf("failed to flush worksheet: %w", err)
	}
	if err := xw.file.Write(xw.out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
