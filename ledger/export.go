package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"mercury-backend/models"
)

// BOM makes spreadsheet tools read the report as UTF-8.
const BOM = "\uFEFF"

const exportDateLayout = "02.01.2006"

// ExportKind selects the rows of a report.
type ExportKind string

const (
	ExportWorks     ExportKind = "works"
	ExportCustomers ExportKind = "customers"
	ExportDebt      ExportKind = "debt"
)

// ParseExportKind parses a report kind.
func ParseExportKind(s string) (ExportKind, error) {
	switch k := ExportKind(s); k {
	case ExportWorks, ExportCustomers, ExportDebt:
		return k, nil
	}
	return "", &ValidationError{Field: "kind", Reason: fmt.Errorf("%w: unknown export kind %q", ErrInvalidInput, s)}
}

// FileName is the download name of a report produced on day d.
func (k ExportKind) FileName(d models.Date) string {
	var name string
	switch k {
	case ExportWorks:
		name = "Islemler"
	case ExportCustomers:
		name = "Musteriler"
	case ExportDebt:
		name = "Borc_Raporu"
	default:
		name = string(k)
	}
	return fmt.Sprintf("Mercury_%s_%s.csv", name, d)
}

var (
	amountFormatter   = money.NewFormatter(2, ",", "", "", "1")
	currencyFormatter = money.NewFormatter(2, ",", "", lira(), "1 $")
)

func lira() string {
	if c := money.GetCurrency(money.TRY); c != nil {
		return c.Grapheme
	}
	return "₺"
}

func cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FormatAmount renders d with two fraction digits and a comma separator.
func FormatAmount(d decimal.Decimal) string { return amountFormatter.Format(cents(d)) }

// FormatCurrency is FormatAmount followed by the lira sign.
func FormatCurrency(d decimal.Decimal) string { return currencyFormatter.Format(cents(d)) }

// Export writes a comma separated report of the given kind followed by the
// global summary. Timestamps are shown in ref's location and the current
// month is ref's month.
func (a *Accounts) Export(w io.Writer, kind ExportKind, ref time.Time) error {
	var records [][]string
	switch kind {
	case ExportWorks:
		if len(a.snap.Works) == 0 {
			return ErrNothingToExport
		}
		records = a.workRecords(ref.Location())
	case ExportCustomers:
		if len(a.snap.Customers) == 0 {
			return ErrNothingToExport
		}
		records = a.customerRecords(ref.Location())
	case ExportDebt:
		if len(a.snap.Customers) == 0 {
			return ErrNothingToExport
		}
		records = a.debtRecords()
	default:
		_, err := ParseExportKind(string(kind))
		return err
	}
	records = append(records, summaryRecords(a.Summary(models.DateOf(ref)))...)

	if _, err := io.WriteString(w, BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write %s report: %w", kind, err)
	}
	return nil
}

func (a *Accounts) workRecords(loc *time.Location) [][]string {
	records := [][]string{{
		"Müşteri Adı", "Tarih", "Malzeme Türü", "Boya Türü", "Yapılan İş",
		"Adet", "Birim Fiyat", "Toplam Fiyat (₺)", "Eklenme Tarihi",
	}}
	for _, w := range a.snap.Works {
		records = append(records, []string{
			w.CustomerName,
			w.Date.Format(exportDateLayout),
			w.MaterialType,
			w.PaintType,
			w.Description,
			strconv.Itoa(w.Quantity),
			FormatAmount(w.UnitPrice),
			FormatAmount(w.Price),
			formatTimestamp(w.CreatedAt, loc),
		})
	}
	return records
}

func (a *Accounts) customerRecords(loc *time.Location) [][]string {
	records := [][]string{{
		"Müşteri Adı", "Telefon", "Adres", "Kayıt Tarihi",
		"İşlem Sayısı", "Toplam Borç", "Ödenen", "Kalan Borç",
	}}
	for _, c := range a.snap.Customers {
		st := a.Stats(c.ID)
		records = append(records, []string{
			c.Name,
			c.Phone,
			c.Address,
			formatTimestamp(c.CreatedAt, loc),
			strconv.Itoa(st.WorkCount),
			FormatAmount(st.TotalBilled),
			FormatAmount(st.TotalPaid),
			FormatAmount(st.Remaining),
		})
	}
	return records
}

func (a *Accounts) debtRecords() [][]string {
	records := [][]string{{
		"Müşteri Adı", "Telefon", "Toplam Borç", "Ödenen",
		"Kalan Borç", "İşlem Sayısı", "Son İşlem Tarihi",
	}}
	for _, c := range a.SortCustomers(slices.Clone(a.snap.Customers), SortByDebt) {
		st := a.Stats(c.ID)
		records = append(records, []string{
			c.Name,
			c.Phone,
			FormatAmount(st.TotalBilled),
			FormatAmount(st.TotalPaid),
			FormatAmount(st.Remaining),
			strconv.Itoa(st.WorkCount),
			st.LastWorkDate.Format(exportDateLayout),
		})
	}
	return records
}

func summaryRecords(s Summary) [][]string {
	return [][]string{
		{""},
		{"ÖZET BİLGİLER"},
		{"Toplam Müşteri Sayısı", strconv.Itoa(s.CustomerCount)},
		{"Toplam İşlem Sayısı", strconv.Itoa(s.WorkCount)},
		{"Toplam Tutar", FormatCurrency(s.TotalBilled)},
		{"Toplam Ödenen", FormatCurrency(s.TotalPaid)},
		{"Toplam Borç", FormatCurrency(s.TotalDebt)},
		{"Ortalama İşlem Tutarı", FormatCurrency(s.AverageWorkAmount)},
		{"Bu Ay İşlem Sayısı", strconv.Itoa(s.CurrentMonthWorkCount)},
		{"Bu Ay Toplam Tutar", FormatCurrency(s.CurrentMonthAmount)},
	}
}

func formatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(exportDateLayout)
}
