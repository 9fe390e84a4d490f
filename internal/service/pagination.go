package service

// EllipsisMarker is the sentinel emitted in a page window where pages were
// collapsed. It can never collide with a real 1-based page number.
const EllipsisMarker = -1

// pageWindowDelta is how many pages are shown on each side of the current one.
const pageWindowDelta = 2

// PageWindow returns the ordered sequence of page numbers to render as
// pagination controls. Page 1 and the last page always appear; up to two
// pages surround the current one; each collapsed gap is a single
// EllipsisMarker. A single-page result yields just [1].
func PageWindow(currentPage, totalPages int) []int {
	if totalPages <= 1 {
		return []int{1}
	}

	left := currentPage - pageWindowDelta
	if left < 2 {
		left = 2
	}
	right := currentPage + pageWindowDelta
	if right > totalPages-1 {
		right = totalPages - 1
	}

	window := []int{1}
	if left > 2 {
		window = append(window, EllipsisMarker)
	}
	for page := left; page <= right; page++ {
		window = append(window, page)
	}
	if right < totalPages-1 {
		window = append(window, EllipsisMarker)
	}
	window = append(window, totalPages)

	return window
}
