package embedded_test

import (
	"testing"

	"github.com/FocuswithJustin/pkgmap/core/formats"
	"github.com/FocuswithJustin/pkgmap/internal/embedded"
)

// TestHandlerRegistrations verifies that importing the embedded package
// registers every format handler, in sniffing order.
func TestHandlerRegistrations(t *testing.T) {
	want := []string{"jsonconfig", "xmlcatalog", "pkgfile"}

	ids := formats.List()
	if len(ids) != len(want) {
		t.Fatalf("registered formats = %v, want %v", ids, want)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("format %d = %q, want %q", i, ids[i], id)
		}
	}

	for _, id := range want {
		h, err := formats.Get(id)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", id, err)
			continue
		}
		if h.ID() != id {
			t.Errorf("handler for %q reports ID %q", id, h.ID())
		}
	}

	if embedded.Count() != len(want) {
		t.Errorf("Count() = %d, want %d", embedded.Count(), len(want))
	}
}

// TestSniffOrder verifies the line format does not shadow structured
// formats that also contain name:value text.
func TestSniffOrder(t *testing.T) {
	jsonDoc := []byte(`{"configVersion": 2, "packages": [{"name": "a", "rootUri": "x/"}]}`)
	h, res := formats.Sniff("somefile", jsonDoc)
	if h == nil || h.ID() != "jsonconfig" {
		t.Errorf("Sniff on JSON picked %v (%s), want jsonconfig", h, res.Reason)
	}

	lineDoc := []byte("foo:lib/\n")
	h, res = formats.Sniff("somefile", lineDoc)
	if h == nil || h.ID() != "pkgfile" {
		t.Errorf("Sniff on line format picked %v (%s), want pkgfile", h, res.Reason)
	}
}
