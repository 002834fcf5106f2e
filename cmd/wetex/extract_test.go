package main

import (
	"testing"

	"github.com/woozymasta/wetex"
)

func TestContainsFold(t *testing.T) {
	if !containsFold([]string{"TEX", "json"}, "tex") {
		t.Error("expected case-insensitive match for tex")
	}
	if containsFold([]string{"json"}, "tex") {
		t.Error("did not expect match for tex")
	}
}

func TestFilterEntries_OnlyAndIgnore(t *testing.T) {
	entries := []wetex.PackageEntry{
		{Path: "a.tex", Kind: wetex.EntryKindTexture},
		{Path: "b.json", Kind: wetex.EntryKindJSON},
		{Path: "c.tex", Kind: wetex.EntryKindTexture},
	}

	old := extractFlags
	defer func() { extractFlags = old }()

	extractFlags.only = []string{"tex"}
	extractFlags.ignore = nil
	got := filterEntries(entries)
	if len(got) != 2 {
		t.Fatalf("only=tex filtered to %d entries, want 2", len(got))
	}

	extractFlags.only = nil
	extractFlags.ignore = []string{"json"}
	got = filterEntries(entries)
	if len(got) != 2 {
		t.Fatalf("ignore=json filtered to %d entries, want 2", len(got))
	}
}

func TestExtensionForMIME(t *testing.T) {
	cases := map[string]string{
		"image/png":               ".png",
		"image/jpeg":              ".jpg",
		"video/mp4":               ".mp4",
		"application/octet-stream": ".bin",
	}
	for mime, want := range cases {
		if got := extensionForMIME(mime); got != want {
			t.Errorf("extensionForMIME(%q) = %q, want %q", mime, got, want)
		}
	}
}
