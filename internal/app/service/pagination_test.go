package service

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit, total int
		wantPages          int
	}{
		{1, 10, 0, 0},
		{1, 10, 1, 1},
		{1, 10, 10, 1},
		{1, 10, 11, 2},
		{2, 5, 15, 3},
	}
	for _, tt := range tests {
		got := newPagination(tt.page, tt.limit, tt.total)
		if got.Pages != tt.wantPages {
			t.Fatalf("newPagination(%d, %d, %d).Pages = %d, want %d", tt.page, tt.limit, tt.total, got.Pages, tt.wantPages)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	if page, limit := normalizePage(0, 0); page != 1 || limit != defaultPageLimit {
		t.Fatalf("normalizePage(0, 0) = (%d, %d), want (1, %d)", page, limit, defaultPageLimit)
	}
	if page, limit := normalizePage(3, 25); page != 3 || limit != 25 {
		t.Fatalf("normalizePage(3, 25) = (%d, %d), want them unchanged", page, limit)
	}
}
