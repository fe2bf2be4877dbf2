package sqlinline

import (
	"regexp"
	"strings"
	"testing"
)

var markerLine = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestEveryQueryCarriesUniqueMarker(t *testing.T) {
	queries := map[string]string{
		"QUpsertGoogleProfile":  QUpsertGoogleProfile,
		"QSelectProfileByID":    QSelectProfileByID,
		"QSelectProfileByEmail": QSelectProfileByEmail,
		"QConsumeCredit":        QConsumeCredit,
		"QSetPlan":              QSetPlan,
		"QRefillDueCredits":     QRefillDueCredits,
		"QInsertUsageLog":       QInsertUsageLog,
		"QListUsageByUser":      QListUsageByUser,
		"QDeleteUsageOlderThan": QDeleteUsageOlderThan,
		"QStatsSummary":         QStatsSummary,
		"QStatsTopTools":        QStatsTopTools,
	}

	seen := make(map[string]string, len(queries))
	for name, q := range queries {
		lines := strings.Split(strings.TrimSpace(q), "\n")
		if len(lines) < 2 {
			t.Fatalf("%s: query has no body", name)
		}
		first := strings.TrimSpace(lines[0])
		if !markerLine.MatchString(first) {
			t.Fatalf("%s: missing or malformed marker line %q", name, first)
		}
		if prev, dup := seen[first]; dup {
			t.Fatalf("%s: marker reused from %s", name, prev)
		}
		seen[first] = name
	}
}
