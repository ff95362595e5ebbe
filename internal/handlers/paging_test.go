package handlers

import (
	"errors"
	"testing"
)

func TestListRange(t *testing.T) {
	cases := []struct {
		name       string
		initial    string
		limit      string
		wantOffset int
		wantCount  int
		wantErr    error
	}{
		{"first page", "0", "10", 0, 10, nil},
		{"second page", "10", "20", 10, 10, nil},
		{"single row", "5", "6", 5, 1, nil},
		{"empty page", "10", "10", 10, 0, nil},
		{"missing params", "", "", 0, 0, errRangeNotNumeric},
		{"non numeric", "abc", "10", 0, 0, errRangeNotNumeric},
		{"negative initial", "-1", "10", 0, 0, errRangeInvalid},
		{"limit before initial", "10", "5", 0, 0, errRangeInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, count, err := listRange(tc.initial, tc.limit)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if offset != tc.wantOffset || count != tc.wantCount {
				t.Errorf("got (%d, %d), want (%d, %d)", offset, count, tc.wantOffset, tc.wantCount)
			}
		})
	}
}
