package review

import "testing"

func TestReviewDelta(t *testing.T) {
	tests := []struct {
		name       string
		wasDue     bool
		isDueAfter bool
		want       int
	}{
		{name: "due card leaves due set", wasDue: true, isDueAfter: false, want: -1},
		{name: "due card stays due", wasDue: true, isDueAfter: true, want: 0},
		{name: "not due stays not due", wasDue: false, isDueAfter: false, want: 0},
		{name: "not due becomes due", wasDue: false, isDueAfter: true, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReviewDelta(tt.wasDue, tt.isDueAfter); got != tt.want {
				t.Errorf("ReviewDelta(%v, %v) = %d, want %d", tt.wasDue, tt.isDueAfter, got, tt.want)
			}
		})
	}
}

func TestCreationDelta(t *testing.T) {
	if got := CreationDelta(true); got != 1 {
		t.Errorf("CreationDelta(true) = %d, want 1", got)
	}
	if got := CreationDelta(false); got != 0 {
		t.Errorf("CreationDelta(false) = %d, want 0", got)
	}
}

func TestDeletionDelta(t *testing.T) {
	if got := DeletionDelta(true); got != -1 {
		t.Errorf("DeletionDelta(true) = %d, want -1", got)
	}
	if got := DeletionDelta(false); got != 0 {
		t.Errorf("DeletionDelta(false) = %d, want 0", got)
	}
}
