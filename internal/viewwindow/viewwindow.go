// Package viewwindow tracks which contiguous slice of date columns is visible.
package viewwindow

// Window is a sliding window over the date columns of the grid.
// It is a value type: every mutator returns a new Window, and all of them go
// through clamp so 0 <= LeftMost() <= MaxLeftMost() always holds.
type Window struct {
	leftMost int
	size     int
	total    int
}

// New creates a window of size columns over total columns, starting at 0.
// Sizes below 1 are treated as 1.
func New(size, total int) Window {
	return Window{size: max(size, 1), total: max(total, 0)}
}

// LeftMost returns the index of the first visible column.
func (w Window) LeftMost() int {
	return w.leftMost
}

// Size returns the number of columns the window shows.
func (w Window) Size() int {
	return w.size
}

// Total returns the number of columns in the grid.
func (w Window) Total() int {
	return w.total
}

// MaxLeftMost returns the largest valid LeftMost value.
func (w Window) MaxLeftMost() int {
	return max(0, w.total-w.size)
}

func (w Window) clamp(v int) int {
	return min(max(v, 0), w.MaxLeftMost())
}

// SetLeftMost moves the window so that v is the first visible column.
func (w Window) SetLeftMost(v int) Window {
	w.leftMost = w.clamp(v)
	return w
}

// NextPage shifts the window forward by one full window.
func (w Window) NextPage() Window {
	return w.SetLeftMost(w.leftMost + w.size)
}

// PreviousPage shifts the window back by one full window.
func (w Window) PreviousPage() Window {
	return w.SetLeftMost(w.leftMost - w.size)
}

// SetTotal changes the number of columns, keeping the position when valid.
func (w Window) SetTotal(total int) Window {
	w.total = max(total, 0)
	return w.SetLeftMost(w.leftMost)
}

// SetSize changes the number of visible columns.
func (w Window) SetSize(size int) Window {
	w.size = max(size, 1)
	return w.SetLeftMost(w.leftMost)
}

// Reset returns to the first column.
func (w Window) Reset() Window {
	return w.SetLeftMost(0)
}

// IsPaginationRequired reports whether some columns do not fit.
func (w Window) IsPaginationRequired() bool {
	return w.size < w.total
}

// Contains reports whether column col is visible.
func (w Window) Contains(col int) bool {
	start, end := w.Visible()
	return col >= start && col < end
}

// Visible returns the half-open range [start, end) of visible columns.
func (w Window) Visible() (start, end int) {
	return w.leftMost, min(w.leftMost+w.size, w.total)
}

// HasNext reports whether NextPage would move the window.
func (w Window) HasNext() bool {
	return w.leftMost < w.MaxLeftMost()
}

// HasPrevious reports whether PreviousPage would move the window.
func (w Window) HasPrevious() bool {
	return w.leftMost > 0
}

// Page returns the 1-based page number of the window, counting the final
// partial page as its own page.
func (w Window) Page() int {
	if !w.HasNext() && w.IsPaginationRequired() {
		return w.Pages()
	}
	return w.leftMost/w.size + 1
}

// Pages returns the number of pages needed to show every column.
func (w Window) Pages() int {
	if w.total == 0 {
		return 1
	}
	return (w.total + w.size - 1) / w.size
}
