package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

func (s *Server) getItem(ctx context.Context, args map[string]any) (string, error) {
	guid, err := requireGUID(args)
	if err != nil {
		return "", err
	}
	item, err := s.arena.GetItem(ctx, guid, getBoolArg(args, "include_empty_attributes"))
	if err != nil {
		return "", err
	}
	return renderItem(item), nil
}

// renderItem lays out the full detail card. The fixed fields always print,
// with N/A standing in for anything the workspace did not populate; URL and
// custom attributes only appear when present.
func renderItem(item arena.Object) string {
	lines := []string{
		fmt.Sprintf("Item: %s - %s", valueOr(item, "number", "N/A"), valueOr(item, "name", "N/A")),
		"GUID: " + valueOr(item, "guid", "N/A"),
		"Revision: " + valueOr(item, "revisionNumber", "N/A"),
		"Lifecycle Phase: " + valueOr(object(item, "lifecyclePhase"), "name", "N/A"),
		"Category: " + valueOr(object(item, "category"), "name", "N/A"),
		"Description: " + valueOr(item, "description", "N/A"),
		"Owner: " + valueOr(object(item, "owner"), "fullName", "N/A"),
		"Created: " + valueOr(item, "creationDateTime", "N/A"),
		"Effective: " + valueOr(item, "effectiveDateTime", "N/A"),
	}

	if app := value(object(item, "url"), "app"); app != "" {
		lines = append(lines, "URL: "+app)
	}

	if attrs := objects(item, "additionalAttributes"); len(attrs) > 0 {
		lines = append(lines, "\nCustom Attributes:")
		for _, attr := range attrs {
			lines = append(lines, fmt.Sprintf("  %s: %s", valueOr(attr, "name", "N/A"), valueOr(attr, "value", "N/A")))
		}
	}

	return strings.Join(lines, "\n")
}
