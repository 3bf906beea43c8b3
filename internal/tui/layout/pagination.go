package layout

// Ellipsis marks a gap in the page window.
const Ellipsis = 0

// PageWindow returns the page buttons to show for current of total pages:
// the first page, delta pages on each side of current, and the last page.
// Gaps are marked with Ellipsis. Returns nil when there is at most one page.
//
//	PageWindow(5, 10, 2) -> [1 0 3 4 5 6 7 0 10]
func PageWindow(current, total, delta int) []int {
	if total <= 1 {
		return nil
	}

	pages := []int{1}
	if current-delta > 2 {
		pages = append(pages, Ellipsis)
	}

	for i := max(2, current-delta); i <= min(total-1, current+delta); i++ {
		pages = append(pages, i)
	}

	if current+delta < total-1 {
		pages = append(pages, Ellipsis)
	}
	pages = append(pages, total)

	return pages
}
