package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbonrobotics/arena-mcp-server/internal/arena"
)

func (s *Server) getItemRevisions(ctx context.Context, args map[string]any) (string, error) {
	guid, err := requireGUID(args)
	if err != nil {
		return "", err
	}
	env, err := s.arena.GetItemRevisions(ctx, guid)
	if err != nil {
		return "", err
	}
	if env.Count == 0 {
		return "No revisions found.", nil
	}

	lines := []string{fmt.Sprintf("Found %d revision(s):\n", env.Count)}
	for _, rev := range env.Results {
		entry := fmt.Sprintf("- Rev %s [%s] - %s",
			valueOr(rev, "number", "Working"),
			revisionStatus(rev),
			valueOr(object(rev, "lifecyclePhase"), "name", "N/A"))
		if change := value(object(rev, "change"), "number"); change != "" {
			entry += fmt.Sprintf(" (via %s)", change)
		}
		lines = append(lines, entry, "  GUID: "+valueOr(rev, "guid", "N/A"))
	}
	return strings.Join(lines, "\n"), nil
}

// revisionStatus maps Arena's numeric revision status to its label.
func revisionStatus(rev arena.Object) string {
	code, ok := intValue(rev, "status")
	if !ok {
		return "Unknown"
	}
	switch code {
	case 0:
		return "Working"
	case 1:
		return "Effective"
	case 2:
		return "Superseded"
	default:
		return "Unknown"
	}
}
