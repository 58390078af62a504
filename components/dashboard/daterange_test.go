package dashboard

import "testing"

func TestDateRangeValidate(t *testing.T) {
	cases := []struct {
		name    string
		rng     DateRange
		wantErr bool
	}{
		{"both unset", DateRange{}, false},
		{"start only", DateRange{Start: "2024-01-01"}, false},
		{"end only", DateRange{End: "2024-06-30"}, false},
		{"ordered bounds", DateRange{Start: "2024-01-01", End: "2024-06-30"}, false},
		{"same day", DateRange{Start: "2024-01-01", End: "2024-01-01"}, false},
		{"inverted bounds", DateRange{Start: "2024-06-30", End: "2024-01-01"}, true},
		{"malformed start", DateRange{Start: "Jan 1 2024"}, true},
		{"timestamp instead of date", DateRange{End: "2024-01-01T00:00:00Z"}, true},
	}
	for _, tc := range cases {
		err := tc.rng.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestDateRangeZeroAndEqual(t *testing.T) {
	if !(DateRange{}).IsZero() {
		t.Fatalf("empty range must be zero")
	}
	if (DateRange{Start: "2024-01-01"}).IsZero() {
		t.Fatalf("range with a bound is not zero")
	}
	a := DateRange{Start: "2024-01-01", End: "2024-02-01"}
	if !a.Equal(DateRange{Start: "2024-01-01", End: "2024-02-01"}) {
		t.Fatalf("identical ranges must compare equal")
	}
	if a.Equal(DateRange{Start: "2024-01-01"}) {
		t.Fatalf("ranges with different ends must not compare equal")
	}
}
