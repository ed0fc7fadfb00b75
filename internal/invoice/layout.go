package invoice

import "math"

// Page geometry in millimeters (A4 portrait). The page is partitioned into
// fixed-height zones; everything the renderer draws is positioned from these
// numbers, and the paginator budgets item rows against them.
const (
	pageWidth  = 210.0
	pageHeight = 297.0

	marginLeft   = 10.0
	marginRight  = 10.0
	marginTop    = 12.0
	marginBottom = 12.0

	contentWidth = pageWidth - marginLeft - marginRight

	// Page 1 only: branding header with the invoice meta box, then the
	// customer box with the centered INVOICE badge.
	headerBlockH   = 60.0
	customerBlockH = 30.0

	// Every page: the page-number stamp (continuation pages draw it where
	// the header would be) and the table header row.
	pageStampH   = 6.0
	tableHeaderH = 7.0

	itemRowH = 6.0

	// Last page only, below the item rows.
	totalsRowCount  = 5
	totalsBlockH    = totalsRowCount * itemRowH
	wordsRowH       = 7.0
	bankBlockH      = 24.0
	signatureBlockH = 18.0
	footerBandH     = 32.0
)

// Layout holds the vertical budget the paginator works against. Kept as a
// struct so the partitioning rules stay testable with synthetic numbers.
type Layout struct {
	ItemRowH          float64
	FirstPageItemArea float64 // space for item rows on page 1
	ContPageItemArea  float64 // space for item rows on continuation pages
	TailReserve       float64 // trailing zones the last page must also hold
}

// A4Layout is the production zone budget.
var A4Layout = Layout{
	ItemRowH:          itemRowH,
	FirstPageItemArea: pageHeight - marginTop - headerBlockH - customerBlockH - tableHeaderH - marginBottom,
	ContPageItemArea:  pageHeight - marginTop - pageStampH - tableHeaderH - marginBottom,
	TailReserve:       totalsBlockH + wordsRowH + bankBlockH + signatureBlockH + footerBandH,
}

// Page is one element of the ordered partition of the item list.
// Items[Start:End] render on this page.
type Page struct {
	Start int
	End   int
	First bool
	Last  bool
}

// FirstPageCapacity is the item-row budget of page 1 ignoring tail zones.
func (l Layout) FirstPageCapacity() int {
	return int(l.FirstPageItemArea / l.ItemRowH)
}

// ContPageCapacity is the item-row budget of a continuation page ignoring
// tail zones.
func (l Layout) ContPageCapacity() int {
	return int(l.ContPageItemArea / l.ItemRowH)
}

// tailRows is the number of item rows displaced by the last page's reserved
// trailing zones.
func (l Layout) tailRows() int {
	return int(math.Ceil(l.TailReserve / l.ItemRowH))
}

// Paginate partitions n items into pages. Page 1 fills to its capacity, then
// continuation pages to theirs; the final page must additionally hold the
// reserved tail zones, so items overflowing its reduced capacity move onto a
// new trailing page. Every item appears exactly once, in original order, and
// exactly one page is marked Last.
func (l Layout) Paginate(n int) []Page {
	capFirst := l.FirstPageCapacity()
	capCont := l.ContPageCapacity()
	tail := l.tailRows()

	counts := []int{minInt(n, capFirst)}
	remaining := n - counts[0]
	for remaining > 0 {
		take := minInt(remaining, capCont)
		counts = append(counts, take)
		remaining -= take
	}

	// Push overflow off the final page until its tail zones fit.
	for {
		lastIdx := len(counts) - 1
		capacity := capCont
		if lastIdx == 0 {
			capacity = capFirst
		}
		reduced := capacity - tail
		if reduced < 0 {
			reduced = 0
		}
		if counts[lastIdx] <= reduced {
			break
		}
		if capCont <= tail {
			// The tail zones displace a full page of rows, so no page can
			// hold items and the tail together. Give the tail a dedicated
			// trailing page instead of shuffling items forever.
			counts = append(counts, 0)
			continue
		}
		move := counts[lastIdx] - reduced
		if move > capCont {
			move = capCont
		}
		counts[lastIdx] -= move
		counts = append(counts, move)
	}

	pages := make([]Page, len(counts))
	start := 0
	for i, count := range counts {
		pages[i] = Page{
			Start: start,
			End:   start + count,
			First: i == 0,
			Last:  i == len(counts)-1,
		}
		start += count
	}
	return pages
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
