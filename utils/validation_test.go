package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	testCases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"0532 444 55 66", "+905324445566", true},
		{"(0532) 444-55-66", "+905324445566", true},
		{"532 444 55 66", "+905324445566", true},
		{"90 532 444 55 66", "+905324445566", true},
		{"0090 532 444 55 66", "+905324445566", true},
		{"+49 30 1234567", "+49301234567", true},
		{"", "", false},
		{"444", "", false},
		{"telefon yok", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := NormalizePhone(tc.in)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("NormalizePhone(%q) = %q, %v, want %q, %v", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	if !ValidatePhone("+90 532 444 55 66") {
		t.Error("ValidatePhone rejected a valid number")
	}
	if ValidatePhone("+0532") {
		t.Error("ValidatePhone accepted a number starting with 0")
	}
}
