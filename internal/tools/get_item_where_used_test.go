package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

func TestGetItemWhereUsedRendering(t *testing.T) {
	api := &stubAPI{envelope: envelopeOf(
		arena.Object{
			"lineNumber": float64(3),
			"quantity":   float64(1),
			"item":       map[string]any{"number": "ASM-100", "name": "Tractor Head", "guid": "AGUID-1"},
		},
	)}
	srv := testServer(api)

	text, err := srv.Dispatch(context.Background(), toolGetItemWhereUsed, map[string]any{"guid": "PART-1"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	want := strings.Join([]string{
		"Used in 1 assembly(ies):\n",
		"- ASM-100: Tractor Head (Line 3, Qty: 1)",
		"  GUID: AGUID-1",
	}, "\n")
	if text != want {
		t.Fatalf("rendered:\n%s\n\nwant:\n%s", text, want)
	}
}

func TestGetItemWhereUsedZero(t *testing.T) {
	srv := testServer(&stubAPI{envelope: &arena.Envelope{}})

	text, err := srv.Dispatch(context.Background(), toolGetItemWhereUsed, map[string]any{"guid": "PART-1"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if text != "Item is not used in any assemblies." {
		t.Fatalf("text: %q", text)
	}
}
