package engine

import (
	"testing"

	"github.com/mlreyes/panelhub/internal/app/models"
)

func totalFor(m models.FacultyMember, role models.Role, contributed int) *AppearanceTotal {
	historical := m.HistoricalAppearances
	if historical < 0 {
		historical = 0
	}
	return &AppearanceTotal{
		Member:      m,
		Role:        role,
		Historical:  historical,
		Contributed: contributed,
		Total:       historical + contributed,
		byScope:     map[int64]int{1: contributed},
	}
}

func TestDetectViolationsStandalone(t *testing.T) {
	rt := DefaultRateTable()

	tests := []struct {
		name        string
		historical  int
		contributed int
		wantFlagged bool
		wantMargin  int
	}{
		// Chairperson standalone limit is 5; limits are inclusive.
		{name: "under limit", historical: 2, contributed: 1, wantFlagged: false},
		{name: "at limit passes", historical: 3, contributed: 2, wantFlagged: false},
		{name: "over limit", historical: 7, contributed: 2, wantFlagged: true, wantMargin: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := []*AppearanceTotal{totalFor(member(1, "Dr. X", tt.historical), models.RoleChairperson, tt.contributed)}
			results, err := detectViolations(totals, "SLAS", models.LevelTertiary, rt)
			if err != nil {
				t.Fatalf("detectViolations() error = %v", err)
			}
			if results[0].Flagged != tt.wantFlagged {
				t.Errorf("Flagged = %v, want %v", results[0].Flagged, tt.wantFlagged)
			}
			if results[0].Margin != tt.wantMargin {
				t.Errorf("Margin = %d, want %d", results[0].Margin, tt.wantMargin)
			}
			if results[0].Combined {
				t.Error("standalone entry reported as combined")
			}
		})
	}
}

func TestDetectViolationsCombinedRule(t *testing.T) {
	rt := DefaultRateTable()

	tests := []struct {
		name        string
		historical  int
		contributed int
		wantFlagged bool
		wantMargin  int
	}{
		// SAM combined limit is 10 over advisor/chair/panel/secretary/validator.
		{name: "combined total under limit", historical: 8, contributed: 1, wantFlagged: false},
		{name: "combined boundary inclusive", historical: 9, contributed: 1, wantFlagged: false},
		{name: "combined exceeded", historical: 9, contributed: 2, wantFlagged: true, wantMargin: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := []*AppearanceTotal{totalFor(member(2, "Dr. Y", tt.historical), models.RoleChairperson, tt.contributed)}
			results, err := detectViolations(totals, "SAM", models.LevelTertiary, rt)
			if err != nil {
				t.Fatalf("detectViolations() error = %v", err)
			}
			if results[0].Flagged != tt.wantFlagged {
				t.Errorf("Flagged = %v, want %v", results[0].Flagged, tt.wantFlagged)
			}
			if results[0].Margin != tt.wantMargin {
				t.Errorf("Margin = %d, want %d", results[0].Margin, tt.wantMargin)
			}
			if !results[0].Combined {
				t.Error("covered entry not reported as combined")
			}
		})
	}
}

func TestDetectViolationsCombinedSumsAcrossRoles(t *testing.T) {
	rt := DefaultRateTable()

	// Historical 6, advisor x2 and panel member x3: combined 6+5 = 11 > 10.
	// Individually each role would be well under its standalone limit of 10.
	m := member(3, "Dr. Z", 6)
	totals := []*AppearanceTotal{
		totalFor(m, models.RoleAdvisor, 2),
		totalFor(m, models.RolePanelMember, 3),
	}

	results, err := detectViolations(totals, "SAM", models.LevelTertiary, rt)
	if err != nil {
		t.Fatalf("detectViolations() error = %v", err)
	}
	for i, result := range results {
		if !result.Flagged {
			t.Errorf("entry %d not flagged; combined violations flag every covered entry together", i)
		}
		if result.Margin != 1 {
			t.Errorf("entry %d margin = %d, want 1", i, result.Margin)
		}
	}
}

func TestDetectViolationsStatisticianOutsideCombinedRule(t *testing.T) {
	rt := DefaultRateTable()

	// The statistician keeps its own 30 cap and is never folded into the SAM
	// combined sum, even when the member is flagged on the combined rule.
	m := member(4, "Dr. W", 9)
	totals := []*AppearanceTotal{
		totalFor(m, models.RoleAdvisor, 2),
		totalFor(m, models.RoleStatistician, 4),
	}

	results, err := detectViolations(totals, "SAM", models.LevelTertiary, rt)
	if err != nil {
		t.Fatalf("detectViolations() error = %v", err)
	}
	if !results[0].Flagged {
		t.Error("advisor entry should be flagged on the combined rule (9+2 > 10)")
	}
	if results[1].Flagged {
		t.Error("statistician entry should stay compliant standalone (13 <= 30)")
	}
	if results[1].Combined {
		t.Error("statistician entry should not report a combined rule")
	}
}

func TestDetectViolationsCombinedCompliantStandaloneFlagged(t *testing.T) {
	rt := DefaultRateTable()

	// Same member: flagged standalone on the chairperson limit outside SAM,
	// while a SAM member with identical numbers stays compliant combined.
	m := member(5, "Dr. V", 4)
	totals := []*AppearanceTotal{totalFor(m, models.RoleChairperson, 3)}

	standalone, err := detectViolations(totals, "SLAS", models.LevelTertiary, rt)
	if err != nil {
		t.Fatalf("detectViolations() error = %v", err)
	}
	if !standalone[0].Flagged || standalone[0].Margin != 2 {
		t.Errorf("standalone: flagged = %v margin = %d, want flagged margin 2", standalone[0].Flagged, standalone[0].Margin)
	}

	combined, err := detectViolations(totals, "SAM", models.LevelTertiary, rt)
	if err != nil {
		t.Fatalf("detectViolations() error = %v", err)
	}
	if combined[0].Flagged {
		t.Error("combined: 4+3 = 7 <= 10 should pass under the SAM rule")
	}
}
