package models

import "testing"

func TestContact(t *testing.T) {
	t.Run("FullName", func(t *testing.T) {
		cases := []struct {
			first, last, want string
		}{
			{"John", "Doe", "John Doe"},
			{"John", "", "John"},
			{"", "Doe", "Doe"},
			{"", "", ""},
		}
		for _, c := range cases {
			got := Contact{FirstName: c.first, LastName: c.last}.FullName()
			if got != c.want {
				t.Errorf("FullName(%q, %q) = %q, want %q", c.first, c.last, got, c.want)
			}
		}
	})
}

func TestContactPage(t *testing.T) {
	t.Run("Empty No Results State", func(t *testing.T) {
		page := ContactPage{TotalPages: 0}
		if !page.Empty() {
			t.Error("expected empty page")
		}
		if page.HasNext() || page.HasPrev() {
			t.Error("empty page should have no navigation")
		}
	})

	t.Run("RangeLabel", func(t *testing.T) {
		page := ContactPage{
			Content:       make([]Contact, 10),
			TotalPages:    3,
			TotalElements: 25,
			Number:        0,
		}

		from, to, total := page.RangeLabel(10)
		if from != 1 || to != 10 || total != 25 {
			t.Errorf("expected 1..10 of 25, got %d..%d of %d", from, to, total)
		}

		last := ContactPage{
			Content:       make([]Contact, 5),
			TotalPages:    3,
			TotalElements: 25,
			Number:        2,
		}
		from, to, total = last.RangeLabel(10)
		if from != 21 || to != 25 || total != 25 {
			t.Errorf("expected 21..25 of 25, got %d..%d of %d", from, to, total)
		}

		// The bounds come from the page size and totals, not the row
		// count: one row on page 0 of 25 still reads "1 to 10".
		short := ContactPage{
			Content:       make([]Contact, 1),
			TotalPages:    3,
			TotalElements: 25,
			Number:        0,
		}
		from, to, total = short.RangeLabel(10)
		if from != 1 || to != 10 || total != 25 {
			t.Errorf("expected 1..10 of 25, got %d..%d of %d", from, to, total)
		}

		empty := ContactPage{TotalElements: 25}
		from, to, total = empty.RangeLabel(10)
		if from != 0 || to != 0 || total != 25 {
			t.Errorf("expected 0..0 of 25, got %d..%d of %d", from, to, total)
		}
	})

	t.Run("Navigation Bounds", func(t *testing.T) {
		first := ContactPage{Content: make([]Contact, 10), TotalPages: 3, Number: 0}
		if first.HasPrev() {
			t.Error("first page should not have previous")
		}
		if !first.HasNext() {
			t.Error("first page of three should have next")
		}

		last := ContactPage{Content: make([]Contact, 5), TotalPages: 3, Number: 2}
		if !last.HasPrev() {
			t.Error("last page should have previous")
		}
		if last.HasNext() {
			t.Error("last page should not have next")
		}
	})
}

func TestImageState(t *testing.T) {
	t.Run("Committed Displays Value", func(t *testing.T) {
		s := CommittedImage("https://img.example.com/a.png")
		if s.Pending() {
			t.Error("committed state should not be pending")
		}
		if s.URL() != "https://img.example.com/a.png" {
			t.Errorf("unexpected URL %s", s.URL())
		}
	})

	t.Run("Begin Shows Preview Immediately", func(t *testing.T) {
		s := CommittedImage("old.png").Begin("preview.png")
		if !s.Pending() {
			t.Error("expected pending state")
		}
		if s.URL() != "preview.png" {
			t.Errorf("expected preview to display, got %s", s.URL())
		}
	})

	t.Run("Commit Collapses To Confirmed URL", func(t *testing.T) {
		s := CommittedImage("old.png").Begin("preview.png").Commit("new.png")
		if s.Pending() {
			t.Error("expected committed state")
		}
		if s.URL() != "new.png" {
			t.Errorf("expected confirmed URL, got %s", s.URL())
		}
	})

	t.Run("Rollback Restores Pre-Upload Image", func(t *testing.T) {
		s := CommittedImage("old.png").Begin("preview.png").Rollback()
		if s.Pending() {
			t.Error("expected committed state after rollback")
		}
		if s.URL() != "old.png" {
			t.Errorf("expected pre-upload image, got %s", s.URL())
		}
	})

	t.Run("Rollback On Committed Is A No-Op", func(t *testing.T) {
		s := CommittedImage("old.png").Rollback()
		if s.URL() != "old.png" {
			t.Errorf("expected unchanged value, got %s", s.URL())
		}
	})

	t.Run("Chained Pending Keeps Original Rollback", func(t *testing.T) {
		s := CommittedImage("old.png").Begin("p1.png").Begin("p2.png").Rollback()
		if s.URL() != "old.png" {
			t.Errorf("expected original committed value, got %s", s.URL())
		}
	})
}
