package tools

import (
	"context"
	"fmt"
	"strings"
)

func (s *Server) getItemWhereUsed(ctx context.Context, args map[string]any) (string, error) {
	guid, err := requireGUID(args)
	if err != nil {
		return "", err
	}
	env, err := s.arena.GetItemWhereUsed(ctx, guid)
	if err != nil {
		return "", err
	}
	if env.Count == 0 {
		return "Item is not used in any assemblies.", nil
	}

	lines := []string{fmt.Sprintf("Used in %d assembly(ies):\n", env.Count)}
	for _, usage := range env.Results {
		item := object(usage, "item")
		lines = append(lines,
			fmt.Sprintf("- %s: %s (Line %s, Qty: %s)",
				valueOr(item, "number", "N/A"),
				valueOr(item, "name", "N/A"),
				valueOr(usage, "lineNumber", "N/A"),
				valueOr(usage, "quantity", "N/A")),
			"  GUID: "+valueOr(item, "guid", "N/A"),
		)
	}
	return strings.Join(lines, "\n"), nil
}
