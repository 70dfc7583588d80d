package gopher

import (
	"testing"

	"github.com/comp3310/gopherindex/logger"
)

func TestParseMenuAcceptsFourFieldLine(t *testing.T) {
	body := "1A Menu\t/menu\tgopher.example.com\t70\n.\n"
	entries := ParseMenu(body, logger.Nop{})
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Type != TypeMenu || e.Display != "A Menu" || e.Selector != "/menu" ||
		e.Host != "gopher.example.com" || e.Port != 70 {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestParseMenuSkipsThreeFieldLine(t *testing.T) {
	body := "1A Menu\t/menu\tgopher.example.com\n"
	entries := ParseMenu(body, logger.Nop{})
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}

func TestParseMenuSkipsLinesWithoutTab(t *testing.T) {
	body := "this is just a header line with no tabs\n1A Menu\t/menu\thost\t70\n"
	entries := ParseMenu(body, logger.Nop{})
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
}

func TestParseMenuSkipsUnparsablePort(t *testing.T) {
	body := "1A Menu\t/menu\thost\tnotaport\n0OK\t/ok\thost\t70\n"
	entries := ParseMenu(body, logger.Nop{})
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1, entries=%+v", len(entries), entries)
	}
	if entries[0].Selector != "/ok" {
		t.Errorf("wrong entry survived: %+v", entries[0])
	}
}

func TestParseMenuPreservesSourceOrder(t *testing.T) {
	body := "0first\t/1\thost\t70\n0second\t/2\thost\t70\n0third\t/3\thost\t70\n"
	entries := ParseMenu(body, logger.Nop{})
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	want := []string{"/1", "/2", "/3"}
	for i, w := range want {
		if entries[i].Selector != w {
			t.Errorf("entry %d selector = %q, want %q", i, entries[i].Selector, w)
		}
	}
}
