package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

func TestGetItemFilesRendering(t *testing.T) {
	api := &stubAPI{envelope: envelopeOf(
		arena.Object{
			"primary": true,
			"file": map[string]any{
				"name":    "laser-module.pdf",
				"format":  "pdf",
				"title":   "Assembly Drawing",
				"number":  "DOC-001",
				"edition": "3",
			},
		},
		arena.Object{
			"file": map[string]any{"name": "datasheet.pdf", "format": "pdf"},
		},
	)}
	srv := testServer(api)

	text, err := srv.Dispatch(context.Background(), toolGetItemFiles, map[string]any{"guid": "PART-1"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	want := strings.Join([]string{
		"Found 2 file(s):\n",
		"- laser-module.pdf (pdf) - Assembly Drawing",
		"  Number: DOC-001, Edition: 3 [PRIMARY]",
		"- datasheet.pdf (pdf)",
		"  Number: N/A, Edition: N/A",
	}, "\n")
	if text != want {
		t.Fatalf("rendered:\n%s\n\nwant:\n%s", text, want)
	}
}

func TestGetItemFilesZero(t *testing.T) {
	srv := testServer(&stubAPI{envelope: &arena.Envelope{}})

	text, err := srv.Dispatch(context.Background(), toolGetItemFiles, map[string]any{"guid": "PART-1"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if text != "No files associated with this item." {
		t.Fatalf("text: %q", text)
	}
}
