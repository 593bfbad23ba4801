package viewwindow

import "testing"

func TestNew(t *testing.T) {
	w := New(8, 10)
	if w.LeftMost() != 0 || w.Size() != 8 || w.Total() != 10 {
		t.Errorf("New(8, 10) = %+v", w)
	}
	if !w.IsPaginationRequired() {
		t.Error("8 of 10 columns should require pagination")
	}

	if got := New(0, 3).Size(); got != 1 {
		t.Errorf("New(0, 3).Size() = %d, want 1", got)
	}
}

func TestNextPage(t *testing.T) {
	w := New(8, 10).NextPage()
	if w.LeftMost() != 2 {
		t.Fatalf("NextPage() leftMost = %d, want 2", w.LeftMost())
	}
	start, end := w.Visible()
	if start != 2 || end != 10 {
		t.Errorf("Visible() = [%d, %d), want [2, 10)", start, end)
	}

	// Idempotent at the end.
	if again := w.NextPage(); again != w {
		t.Errorf("NextPage() at end moved to %d", again.LeftMost())
	}
}

func TestNextPage_Converges(t *testing.T) {
	w := New(3, 10)
	want := []int{3, 6, 7, 7}
	for i, lm := range want {
		w = w.NextPage()
		if w.LeftMost() != lm {
			t.Errorf("step %d: leftMost = %d, want %d", i, w.LeftMost(), lm)
		}
	}
}

func TestPreviousPage(t *testing.T) {
	w := New(3, 10).SetLeftMost(7)
	want := []int{4, 1, 0, 0}
	for i, lm := range want {
		w = w.PreviousPage()
		if w.LeftMost() != lm {
			t.Errorf("step %d: leftMost = %d, want %d", i, w.LeftMost(), lm)
		}
	}
}

func TestSetLeftMost_Clamps(t *testing.T) {
	tests := []struct {
		name        string
		size, total int
		in, want    int
	}{
		{"negative", 4, 10, -3, 0},
		{"in range", 4, 10, 5, 5},
		{"past max", 4, 10, 9, 6},
		{"window larger than total", 10, 4, 2, 0},
		{"no columns", 5, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.size, tt.total).SetLeftMost(tt.in).LeftMost()
			if got != tt.want {
				t.Errorf("SetLeftMost(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetTotal(t *testing.T) {
	w := New(4, 20).SetLeftMost(12)

	shrunk := w.SetTotal(10)
	if shrunk.LeftMost() != 6 {
		t.Errorf("SetTotal(10) leftMost = %d, want 6", shrunk.LeftMost())
	}
	grown := w.SetTotal(30)
	if grown.LeftMost() != 12 {
		t.Errorf("SetTotal(30) leftMost = %d, want 12", grown.LeftMost())
	}
	if w.LeftMost() != 12 {
		t.Error("SetTotal must not modify the receiver")
	}
}

func TestSetSize(t *testing.T) {
	w := New(2, 6).SetLeftMost(4).SetSize(5)
	if w.LeftMost() != 1 {
		t.Errorf("SetSize(5) leftMost = %d, want 1", w.LeftMost())
	}
}

func TestReset(t *testing.T) {
	w := New(2, 6).SetLeftMost(4).Reset()
	if w.LeftMost() != 0 {
		t.Errorf("Reset() leftMost = %d, want 0", w.LeftMost())
	}
}

func TestContains(t *testing.T) {
	w := New(3, 10).SetLeftMost(4)
	for col, want := range map[int]bool{3: false, 4: true, 6: true, 7: false} {
		if got := w.Contains(col); got != want {
			t.Errorf("Contains(%d) = %v, want %v", col, got, want)
		}
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		size, total, leftMost int
		page, pages           int
	}{
		{8, 10, 0, 1, 2},
		{8, 10, 2, 2, 2},
		{3, 9, 3, 2, 3},
		{3, 9, 6, 3, 3},
		{5, 3, 0, 1, 1},
		{5, 0, 0, 1, 1},
	}
	for _, tt := range tests {
		w := New(tt.size, tt.total).SetLeftMost(tt.leftMost)
		if w.Page() != tt.page || w.Pages() != tt.pages {
			t.Errorf("size=%d total=%d left=%d: page %d/%d, want %d/%d",
				tt.size, tt.total, tt.leftMost, w.Page(), w.Pages(), tt.page, tt.pages)
		}
	}
}

func TestHasNextPrevious(t *testing.T) {
	w := New(4, 10)
	if w.HasPrevious() || !w.HasNext() {
		t.Error("first page should have next only")
	}
	w = w.NextPage().NextPage()
	if !w.HasPrevious() || w.HasNext() {
		t.Error("last page should have previous only")
	}
}
