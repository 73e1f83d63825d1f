package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{"Plain date", "2024-03-01", NewDate(2024, time.March, 1), false},
		{"Surrounding space", " 2024-03-01 ", NewDate(2024, time.March, 1), false},
		{"RFC 3339 timestamp", "2024-03-01T22:15:00.000Z", NewDate(2024, time.March, 1), false},
		{"Day out of range", "2024-02-30", Date{}, true},
		{"Other layout", "01.03.2024", Date{}, true},
		{"Empty", "", Date{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2024-03-01")
	b := MustParseDate("2024-03-31")
	c := MustParseDate("2023-03-15")

	if !a.Before(b) || a.After(b) || a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("ordering of %s and %s is wrong", a, b)
	}
	if !a.SameMonth(b) {
		t.Errorf("%s and %s are in the same month", a, b)
	}
	if a.SameMonth(c) {
		t.Errorf("%s and %s are in different years", a, c)
	}
	if got := NewDate(2024, time.January, 32); got != MustParseDate("2024-02-01") {
		t.Errorf("NewDate did not normalize: %s", got)
	}
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	data, err := json.Marshal(payload{Date: MustParseDate("2024-03-01")})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"date":"2024-03-01"}` {
		t.Errorf("Marshal() = %s", data)
	}

	data, _ = json.Marshal(payload{})
	if string(data) != `{"date":""}` {
		t.Errorf("Marshal(zero) = %s", data)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"date":"2024-12-31T10:00:00Z"}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Date != NewDate(2024, time.December, 31) {
		t.Errorf("Unmarshal() = %s", p.Date)
	}
	if err := json.Unmarshal([]byte(`{"date":"31/12/2024"}`), &p); err == nil {
		t.Errorf("Unmarshal() accepted an invalid date")
	}
}

func TestDate_Scan(t *testing.T) {
	want := MustParseDate("2024-03-01")
	for _, in := range []interface{}{
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		"2024-03-01",
		[]byte("2024-03-01"),
	} {
		var d Date
		if err := d.Scan(in); err != nil {
			t.Fatalf("Scan(%T) error: %v", in, err)
		}
		if d != want {
			t.Errorf("Scan(%T) = %s, want %s", in, d, want)
		}
	}

	var d Date
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Errorf("Scan(nil) = %s, %v", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Errorf("Scan(int) succeeded")
	}
	if v, _ := (Date{}).Value(); v != nil {
		t.Errorf("Value() of zero date = %v, want nil", v)
	}
}
