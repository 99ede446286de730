package engine

import (
	"reflect"
	"testing"

	"github.com/mlreyes/panelhub/internal/app/models"
)

func TestEvaluateFlaggedChairScenario(t *testing.T) {
	// Dr. X chairs Group 1 and Group 2 with historical 7 for SLAS: total 9
	// exceeds the standalone chairperson limit of 5 by 4, paid 2 x ₱400.
	req := tertiaryFinalRequest(2,
		models.PanelAssignment{ID: 1, Member: member(1, "Dr. X", 7), Roles: []models.Role{models.RoleChairperson}, GroupScope: 1},
		models.PanelAssignment{ID: 2, Member: member(1, "Dr. X", 7), Roles: []models.Role{models.RoleChairperson}, GroupScope: 2},
	)

	eval, err := Evaluate(req, DefaultRateTable())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(eval.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(eval.Entries))
	}
	entry := eval.Entries[0]
	if entry.Contributed != 2 || entry.Total != 9 {
		t.Errorf("contributed = %d total = %d, want 2 and 9", entry.Contributed, entry.Total)
	}
	if !entry.IsFlagged || entry.ViolationMargin != 4 {
		t.Errorf("flagged = %v margin = %d, want flagged with margin 4", entry.IsFlagged, entry.ViolationMargin)
	}
	if entry.Compensation != PesosToMoney(800) {
		t.Errorf("compensation = %v, want ₱800.00", entry.Compensation)
	}
	if !reflect.DeepEqual(entry.GroupScopes, []int64{1, 2}) {
		t.Errorf("group scopes = %v, want [1 2]", entry.GroupScopes)
	}
	if !eval.RequiresJustification {
		t.Error("request with a flagged entry must require justification")
	}
	if len(eval.Violations) != 1 {
		t.Errorf("violations = %v, want the flagged entry", eval.Violations)
	}
}

func TestEvaluateUnflaggedRequest(t *testing.T) {
	req := tertiaryFinalRequest(1,
		models.PanelAssignment{ID: 1, Member: member(1, "A", 0), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
	)

	eval, err := Evaluate(req, DefaultRateTable())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.RequiresJustification {
		t.Error("compliant request must not require justification")
	}
	if len(eval.Violations) != 0 {
		t.Errorf("violations = %v, want none", eval.Violations)
	}
}

func TestEvaluateGrandTotalEqualsEntrySum(t *testing.T) {
	req := tertiaryFinalRequest(3,
		models.PanelAssignment{ID: 1, Member: member(1, "Chair", 1), Roles: []models.Role{models.RoleChairperson}, GroupScope: 1},
		models.PanelAssignment{ID: 2, Member: member(2, "Adv", 2), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 2},
		models.PanelAssignment{ID: 3, Member: member(3, "Panel", 0), Roles: []models.Role{models.RolePanelMember}, GroupScope: 3},
		models.PanelAssignment{ID: 4, Member: member(9, "Stat", 5), Roles: []models.Role{models.RoleStatistician}, GroupScope: models.SharedGroupScope},
		models.PanelAssignment{ID: 5, Member: member(8, "Sec", 0), Roles: []models.Role{models.RoleSecretary, models.RoleValidator}, GroupScope: models.SharedGroupScope},
	)

	eval, err := Evaluate(req, DefaultRateTable())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	var sum Money
	for _, entry := range eval.Entries {
		sum += entry.Compensation
	}
	if sum != eval.GrandTotal {
		t.Errorf("sum of entry compensations = %v, grand total = %v", sum, eval.GrandTotal)
	}

	var groupSum Money
	for _, gt := range eval.GroupTotals {
		groupSum += gt.Total
	}
	if groupSum != eval.GrandTotal {
		t.Errorf("sum of group subtotals = %v, grand total = %v", groupSum, eval.GrandTotal)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	req := tertiaryFinalRequest(2,
		models.PanelAssignment{ID: 1, Member: member(1, "Dr. X", 7), Roles: []models.Role{models.RoleChairperson}, GroupScope: 1},
		models.PanelAssignment{ID: 2, Member: member(9, "Stat", -1), Roles: []models.Role{models.RoleStatistician}, GroupScope: models.SharedGroupScope},
	)
	rt := DefaultRateTable()

	first, err := Evaluate(req, rt)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	second, err := Evaluate(req, rt)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("recomputing on an unchanged snapshot must yield identical output")
	}
}

func TestEvaluateAbortsOnConfigurationError(t *testing.T) {
	req := tertiaryFinalRequest(1,
		models.PanelAssignment{ID: 1, Member: member(1, "A", 0), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
	)

	empty := &RateTable{
		rates:     map[rateKey]Money{},
		deptRates: map[string]map[rateKey]Money{},
		limits:    map[limitKey]int{},
	}
	if eval, err := Evaluate(req, empty); err == nil || eval != nil {
		t.Errorf("Evaluate() = (%v, %v), want nil result and an error", eval, err)
	}
}

func TestEvaluateCarriesWarnings(t *testing.T) {
	req := tertiaryFinalRequest(1,
		models.PanelAssignment{ID: 1, Member: member(1, "A", -2), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
	)

	eval, err := Evaluate(req, DefaultRateTable())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(eval.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one normalization warning", eval.Warnings)
	}
	if eval.Entries[0].Historical != 0 {
		t.Errorf("historical = %d, want normalized 0", eval.Entries[0].Historical)
	}
}
