package api

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestDecodeListBareArray(t *testing.T) {
	var books []Book
	DecodeList(zerolog.Nop(), []byte(`[{"title":"1984"},{"title":"Dune"}]`), "books", &books)

	if len(books) != 2 || books[0].Title != "1984" {
		t.Fatalf("got %+v", books)
	}
}

func TestDecodeListWrapped(t *testing.T) {
	var books []Book
	DecodeList(zerolog.Nop(), []byte(`{"books":[{"title":"1984"},{"title":"Dune"}]}`), "books", &books)

	if len(books) != 2 || books[1].Title != "Dune" {
		t.Fatalf("got %+v", books)
	}
}

func TestDecodeListShapesAgree(t *testing.T) {
	bare := []byte(`[{"title":"1984","barcode":"B1"}]`)
	wrapped := []byte(`{"books":[{"title":"1984","barcode":"B1"}]}`)

	var fromBare, fromWrapped []Book
	DecodeList(zerolog.Nop(), bare, "books", &fromBare)
	DecodeList(zerolog.Nop(), wrapped, "books", &fromWrapped)

	if len(fromBare) != len(fromWrapped) {
		t.Fatalf("lengths differ: %d vs %d", len(fromBare), len(fromWrapped))
	}
	for i := range fromBare {
		if fromBare[i] != fromWrapped[i] {
			t.Fatalf("element %d differs: %+v vs %+v", i, fromBare[i], fromWrapped[i])
		}
	}
}

func TestDecodeListUnexpectedShape(t *testing.T) {
	var books []Book
	DecodeList(zerolog.Nop(), []byte(`{"count":7}`), "books", &books)
	if len(books) != 0 {
		t.Fatalf("expected empty slice, got %+v", books)
	}

	DecodeList(zerolog.Nop(), []byte(`"just a string"`), "books", &books)
	if len(books) != 0 {
		t.Fatalf("expected empty slice, got %+v", books)
	}
}
