package tools

import (
	"context"
	"fmt"
	"strings"
)

func (s *Server) getItemBOM(ctx context.Context, args map[string]any) (string, error) {
	guid, err := requireGUID(args)
	if err != nil {
		return "", err
	}
	env, err := s.arena.GetItemBOM(ctx, guid, getBoolArg(args, "include_additional_attributes"))
	if err != nil {
		return "", err
	}
	if env.Count == 0 {
		return "No BOM lines found (item may not be an assembly).", nil
	}

	lines := []string{fmt.Sprintf("BOM has %d line(s):\n", env.Count)}
	for _, bomLine := range env.Results {
		item := object(bomLine, "item")
		entry := fmt.Sprintf("[%s] %s: %s (Qty: %s)",
			valueOr(bomLine, "lineNumber", "N/A"),
			valueOr(item, "number", "N/A"),
			valueOr(item, "name", "N/A"),
			valueOr(bomLine, "quantity", "N/A"))
		if refDes := value(bomLine, "refDes"); refDes != "" {
			entry += " RefDes: " + refDes
		}
		lines = append(lines, entry, "     GUID: "+valueOr(item, "guid", "N/A"))
	}
	return strings.Join(lines, "\n"), nil
}
