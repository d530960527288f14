package media

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw     string
		want    Kind
		wantErr bool
	}{
		{raw: "movie", want: KindMovie},
		{raw: "show", want: KindShow},
		{raw: "tv", want: KindShow},
		{raw: " TV ", want: KindShow},
		{raw: "person", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseKind(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidKind) {
					t.Fatalf("expected ErrInvalidKind, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	if got, err := ParseList("Watchlist"); err != nil || got != Watchlist {
		t.Fatalf("expected watchlist, got %q (%v)", got, err)
	}
	if _, err := ParseList("wishlist"); !errors.Is(err, ErrInvalidList) {
		t.Fatalf("expected ErrInvalidList, got %v", err)
	}
}
