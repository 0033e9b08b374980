package main

import (
	"strings"
	"testing"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"Shared Scenes", "File"},
		[][]string{{"3", "clip-b"}, {"1"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	if !strings.Contains(out, "clip-b") {
		t.Fatalf("missing row content:\n%s", out)
	}
	if !strings.Contains(out, "Shared Scenes") {
		t.Fatalf("missing header:\n%s", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestOpenFrameStreamRequiresInput(t *testing.T) {
	if _, _, _, err := openFrameStream(nil, ""); err == nil {
		t.Fatal("expected error without file or --stdin")
	}
}

func TestOpenFrameStreamUsesStdinName(t *testing.T) {
	name, src, cleanup, err := openFrameStream(nil, "piped-clip")
	if err != nil {
		t.Fatalf("openFrameStream: %v", err)
	}
	defer cleanup()
	if name != "piped-clip" {
		t.Fatalf("name = %q", name)
	}
	if src == nil {
		t.Fatal("nil reader")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, want := range []string{"init", "analyze", "rm", "search", "top", "files", "scenes", "config"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing subcommand %q", want)
		}
	}
}
