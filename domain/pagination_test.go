package domain

import "testing"

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		page           int
		pageSize       int
		wantOffset     int
		wantTotalPages int
	}{
		{
			name:           "middle page",
			total:          25,
			page:           2,
			pageSize:       10,
			wantOffset:     10,
			wantTotalPages: 3,
		},
		{
			name:           "first page",
			total:          25,
			page:           1,
			pageSize:       10,
			wantOffset:     0,
			wantTotalPages: 3,
		},
		{
			name:           "exact multiple",
			total:          20,
			page:           2,
			pageSize:       10,
			wantOffset:     10,
			wantTotalPages: 2,
		},
		{
			name:           "empty set",
			total:          0,
			page:           1,
			pageSize:       10,
			wantOffset:     0,
			wantTotalPages: 0,
		},
		{
			name:           "single row",
			total:          1,
			page:           1,
			pageSize:       10,
			wantOffset:     0,
			wantTotalPages: 1,
		},
		{
			name:           "page beyond the end keeps real page count",
			total:          25,
			page:           9,
			pageSize:       10,
			wantOffset:     80,
			wantTotalPages: 3,
		},
		{
			name:           "page below one clamps offset to zero",
			total:          25,
			page:           0,
			pageSize:       10,
			wantOffset:     0,
			wantTotalPages: 3,
		},
		{
			name:           "page size one",
			total:          3,
			page:           2,
			pageSize:       1,
			wantOffset:     1,
			wantTotalPages: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := Paginate(tt.total, tt.page, tt.pageSize)
			if window.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", window.Offset, tt.wantOffset)
			}
			if window.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", window.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	if got := PageOffset(3, 20); got != 40 {
		t.Errorf("PageOffset(3, 20) = %d, want 40", got)
	}
	if got := PageOffset(-5, 20); got != 0 {
		t.Errorf("PageOffset(-5, 20) = %d, want 0", got)
	}
}
