package data

import "testing"

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name  string
		stock int64
		want  string
	}{
		{"zero stock", 0, "The Raven"},
		{"at threshold", 111, "The Raven"},
		{"just above threshold", 112, "The Raven -- 11% discount!"},
		{"well above threshold", 555, "The Raven -- 11% discount!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := &Book{ID: 251, Title: "The Raven", AuthorID: 150, Stock: tt.stock}
			if got := book.DisplayTitle(); got != tt.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayDoesNotMutateStoredTitle(t *testing.T) {
	book := &Book{ID: 252, Title: "Eleonora", AuthorID: 150, Stock: 555}

	projected := book.Display()
	if projected.Title != "Eleonora -- 11% discount!" {
		t.Errorf("projected title = %q", projected.Title)
	}
	if book.Title != "Eleonora" {
		t.Errorf("stored title mutated: %q", book.Title)
	}

	// Projecting twice must not stack the marker.
	again := book.Display()
	if again.Title != "Eleonora -- 11% discount!" {
		t.Errorf("second projection = %q", again.Title)
	}
}
