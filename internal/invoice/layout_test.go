package invoice

import "testing"

// checkPartition verifies the structural invariants every pagination must
// hold: items covered exactly once in order, page one marked First, exactly
// the final page marked Last.
func checkPartition(t *testing.T, n int, pages []Page) {
	t.Helper()

	if len(pages) == 0 {
		t.Fatal("no pages produced")
	}

	next := 0
	for i, page := range pages {
		if page.Start != next {
			t.Errorf("page %d starts at %d, want %d", i, page.Start, next)
		}
		if page.End < page.Start {
			t.Errorf("page %d has End %d < Start %d", i, page.End, page.Start)
		}
		if page.First != (i == 0) {
			t.Errorf("page %d First = %v", i, page.First)
		}
		if page.Last != (i == len(pages)-1) {
			t.Errorf("page %d Last = %v", i, page.Last)
		}
		next = page.End
	}
	if next != n {
		t.Errorf("pages cover %d items, want %d", next, n)
	}
}

func TestPaginateSmallInvoiceIsOnePage(t *testing.T) {
	pages := A4Layout.Paginate(3)
	checkPartition(t, 3, pages)

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if !pages[0].First || !pages[0].Last {
		t.Error("single page must be both First and Last")
	}
}

func TestPaginateEmptyInvoice(t *testing.T) {
	pages := A4Layout.Paginate(0)
	checkPartition(t, 0, pages)
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
}

func TestPaginateTailReserveForcesOverflow(t *testing.T) {
	// Exactly fill page 1: the tail zones cannot fit, so the paginator
	// must move trailing items onto a continuation page.
	n := A4Layout.FirstPageCapacity()
	pages := A4Layout.Paginate(n)
	checkPartition(t, n, pages)

	if len(pages) < 2 {
		t.Fatalf("got %d pages, want overflow onto a second page", len(pages))
	}

	last := pages[len(pages)-1]
	maxOnLast := A4Layout.ContPageCapacity() - A4Layout.tailRows()
	if got := last.End - last.Start; got > maxOnLast {
		t.Errorf("last page holds %d items, tail reserve allows %d", got, maxOnLast)
	}
}

func TestPaginateLargeInvoice(t *testing.T) {
	for _, n := range []int{1, 10, 37, 38, 39, 100, 500} {
		pages := A4Layout.Paginate(n)
		checkPartition(t, n, pages)

		// No page may exceed its raw capacity.
		for i, page := range pages {
			capacity := A4Layout.ContPageCapacity()
			if page.First {
				capacity = A4Layout.FirstPageCapacity()
			}
			if count := page.End - page.Start; count > capacity {
				t.Errorf("n=%d page %d holds %d items, capacity %d", n, i, count, capacity)
			}
		}

		// The last page must also hold the reserved tail zones.
		last := pages[len(pages)-1]
		capacity := A4Layout.ContPageCapacity()
		if last.First {
			capacity = A4Layout.FirstPageCapacity()
		}
		if count := last.End - last.Start; count > capacity-A4Layout.tailRows() {
			t.Errorf("n=%d last page holds %d items, reduced capacity %d",
				n, count, capacity-A4Layout.tailRows())
		}
	}
}

func TestPaginateTailLargerThanPage(t *testing.T) {
	// Budget where the tail zones displace more rows than a continuation
	// page holds at all. No page can carry items and the tail together, so
	// the tail must land on a dedicated trailing page.
	layout := Layout{
		ItemRowH:          1,
		FirstPageItemArea: 4,
		ContPageItemArea:  3,
		TailReserve:       5,
	}

	for _, n := range []int{0, 1, 2, 4, 9} {
		pages := layout.Paginate(n)
		checkPartition(t, n, pages)

		last := pages[len(pages)-1]
		if last.End != last.Start {
			t.Errorf("n=%d: last page holds %d items, want a dedicated tail page", n, last.End-last.Start)
		}
	}
}

func TestPaginateSyntheticLayout(t *testing.T) {
	// Tiny synthetic budget: 4 rows on page 1, 6 on continuations, tail
	// displacing 2 rows.
	layout := Layout{
		ItemRowH:          1,
		FirstPageItemArea: 4,
		ContPageItemArea:  6,
		TailReserve:       2,
	}

	tests := []struct {
		n         int
		wantPages int
		wantLast  int // items on the final page
	}{
		{0, 1, 0},
		{2, 1, 2},
		{3, 2, 1}, // 3 > 4-2, one item spills
		{4, 2, 2},
		{10, 3, 2},
	}

	for _, tt := range tests {
		pages := layout.Paginate(tt.n)
		checkPartition(t, tt.n, pages)
		if len(pages) != tt.wantPages {
			t.Errorf("n=%d: got %d pages, want %d", tt.n, len(pages), tt.wantPages)
			continue
		}
		last := pages[len(pages)-1]
		if got := last.End - last.Start; got != tt.wantLast {
			t.Errorf("n=%d: last page holds %d items, want %d", tt.n, got, tt.wantLast)
		}
	}
}
