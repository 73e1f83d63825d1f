package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"mercury-backend/models"
)

func readReport(t *testing.T, raw string) [][]string {
	t.Helper()
	if !strings.HasPrefix(raw, BOM) {
		t.Fatalf("report does not start with a byte order mark: %q", raw[:min(len(raw), 8)])
	}
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(raw, BOM)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	return records
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"450", "450,00"},
		{"1234.5", "1234,50"},
		{"0.07", "0,07"},
		{"-150", "-150,00"},
		{"99.999", "100,00"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			if got := FormatAmount(dec(tc.in)); got != tc.want {
				t.Errorf("FormatAmount(%s) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
	if got := FormatCurrency(dec("1234.56")); got != "1234,56 ₺" {
		t.Errorf("FormatCurrency() = %q, want %q", got, "1234,56 ₺")
	}
}

func TestExportKind(t *testing.T) {
	d := models.MustParseDate("2026-10-14")
	testCases := []struct {
		kind string
		want string
	}{
		{"works", "Mercury_Islemler_2026-10-14.csv"},
		{"customers", "Mercury_Musteriler_2026-10-14.csv"},
		{"debt", "Mercury_Borc_Raporu_2026-10-14.csv"},
	}
	for _, tc := range testCases {
		k, err := ParseExportKind(tc.kind)
		if err != nil {
			t.Fatalf("ParseExportKind(%q) error: %v", tc.kind, err)
		}
		if got := k.FileName(d); got != tc.want {
			t.Errorf("FileName() = %q, want %q", got, tc.want)
		}
	}
	if _, err := ParseExportKind("payments"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseExportKind(payments) error = %v, want ErrInvalidInput", err)
	}
}

func TestAccounts_ExportWorks(t *testing.T) {
	s := newTestStore()
	c := mustCustomer(t, s, "Ayşe")
	in := workInput(c.ID, "2024-03-01", 3, "150")
	in.Description = `Kapı, "pencere"`
	if _, err := s.AddWorkItem(in); err != nil {
		t.Fatal(err)
	}
	mustPayment(t, s, c.ID, "2024-03-02", "100")

	var buf bytes.Buffer
	if err := s.Accounts().Export(&buf, ExportWorks, testNow); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	raw := buf.String()
	if !strings.Contains(raw, `"Kapı, ""pencere"""`) {
		t.Errorf("description with comma and quotes is not escaped: %s", raw)
	}
	if !strings.Contains(raw, `,"450,00",`) {
		t.Errorf("total price is not a quoted decimal-comma cell: %s", raw)
	}

	records := readReport(t, raw)
	wantHeader := []string{
		"Müşteri Adı", "Tarih", "Malzeme Türü", "Boya Türü", "Yapılan İş",
		"Adet", "Birim Fiyat", "Toplam Fiyat (₺)", "Eklenme Tarihi",
	}
	if !slices.Equal(records[0], wantHeader) {
		t.Errorf("header = %v, want %v", records[0], wantHeader)
	}
	wantRow := []string{"Ayşe", "01.03.2024", "Ahşap", "Vernik", `Kapı, "pencere"`, "3", "150,00", "450,00", "10.03.2024"}
	if !slices.Equal(records[1], wantRow) {
		t.Errorf("row = %v, want %v", records[1], wantRow)
	}

	// The blank separator line is skipped by the reader.
	summary := records[2:]
	want := [][]string{
		{"ÖZET BİLGİLER"},
		{"Toplam Müşteri Sayısı", "1"},
		{"Toplam İşlem Sayısı", "1"},
		{"Toplam Tutar", "450,00 ₺"},
		{"Toplam Ödenen", "100,00 ₺"},
		{"Toplam Borç", "350,00 ₺"},
		{"Ortalama İşlem Tutarı", "450,00 ₺"},
		{"Bu Ay İşlem Sayısı", "1"},
		{"Bu Ay Toplam Tutar", "450,00 ₺"},
	}
	if len(summary) != len(want) {
		t.Fatalf("summary has %d lines, want %d: %v", len(summary), len(want), summary)
	}
	for i := range want {
		if !slices.Equal(summary[i], want[i]) {
			t.Errorf("summary line %d = %v, want %v", i, summary[i], want[i])
		}
	}
}

func TestAccounts_ExportCustomers(t *testing.T) {
	s := newTestStore()
	if _, err := s.AddCustomer(CustomerInput{Name: "Mehmet", Phone: "0532", Address: "Kadıköy, İstanbul"}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := s.Accounts().Export(&buf, ExportCustomers, testNow); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	records := readReport(t, buf.String())
	want := []string{"Mehmet", "0532", "Kadıköy, İstanbul", "10.03.2024", "0", "0,00", "0,00", "0,00"}
	if !slices.Equal(records[1], want) {
		t.Errorf("row = %v, want %v", records[1], want)
	}
}

func TestAccounts_ExportDebtSortedByRemaining(t *testing.T) {
	f := newDebtFixture(t)
	var buf bytes.Buffer
	if err := f.s.Accounts().Export(&buf, ExportDebt, testNow); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	records := readReport(t, buf.String())
	var names []string
	for _, r := range records[1:5] {
		names = append(names, r[0])
	}
	want := []string{"Ayşe Yılmaz", "Mehmet Demir", "Ali Çelik", "Fatma Kaya"}
	if !slices.Equal(names, want) {
		t.Errorf("debt report order = %v, want %v", names, want)
	}
	if got := records[1]; got[4] != "350,00" || got[6] != "01.03.2024" {
		t.Errorf("first debt row = %v", got)
	}
	if got := records[3]; got[6] != "" {
		t.Errorf("customer without works has last work date %q", got[6])
	}
	if got := records[4]; got[4] != "-50,00" {
		t.Errorf("overpaid remaining = %q, want -50,00", got[4])
	}
}

func TestAccounts_ExportTimestampsInReferenceLocation(t *testing.T) {
	late := time.Date(2024, time.March, 10, 23, 30, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return late }))
	mustCustomer(t, s, "Ayşe")
	istanbul := time.FixedZone("TRT", 3*60*60)

	var buf bytes.Buffer
	if err := s.Accounts().Export(&buf, ExportCustomers, late.In(istanbul)); err != nil {
		t.Fatal(err)
	}
	records := readReport(t, buf.String())
	if got := records[1][3]; got != "11.03.2024" {
		t.Errorf("registration date = %q, want 11.03.2024", got)
	}
}

func TestAccounts_ExportNothing(t *testing.T) {
	s := newTestStore()
	for _, kind := range []ExportKind{ExportWorks, ExportCustomers, ExportDebt} {
		var buf bytes.Buffer
		if err := s.Accounts().Export(&buf, kind, testNow); !errors.Is(err, ErrNothingToExport) {
			t.Errorf("Export(%s) of empty store error = %v, want ErrNothingToExport", kind, err)
		}
		if buf.Len() != 0 {
			t.Errorf("Export(%s) wrote %d bytes for an empty store", kind, buf.Len())
		}
	}

	mustCustomer(t, s, "Ayşe")
	var buf bytes.Buffer
	if err := s.Accounts().Export(&buf, ExportWorks, testNow); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Export(works) without works error = %v, want ErrNothingToExport", err)
	}
}
