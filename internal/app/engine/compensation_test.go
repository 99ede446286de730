package engine

import (
	"testing"

	"github.com/mlreyes/panelhub/internal/app/models"
)

func tertiaryFinalRequest(groupCount int, assignments ...models.PanelAssignment) *models.DefenseRequest {
	return &models.DefenseRequest{
		Department:   &models.Department{ID: 2, Code: "SLAS", Name: "School of Liberal Arts and Sciences"},
		ProgramLevel: models.LevelTertiary,
		DefenseType:  models.DefenseFinal,
		Groups:       groups(groupCount),
		Assignments:  assignments,
	}
}

func TestComputeCompensationPaysContributedOnly(t *testing.T) {
	// Historical appearances enter limit checks only; Dr. X chairs two groups
	// and earns 2 x ₱400 regardless of the historical 7.
	req := tertiaryFinalRequest(2,
		models.PanelAssignment{ID: 1, Member: member(1, "Dr. X", 7), Roles: []models.Role{models.RoleChairperson}, GroupScope: 1},
		models.PanelAssignment{ID: 2, Member: member(1, "Dr. X", 7), Roles: []models.Role{models.RoleChairperson}, GroupScope: 2},
	)

	totals, _, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	comp, err := computeCompensation(totals, req, DefaultRateTable())
	if err != nil {
		t.Fatalf("computeCompensation() error = %v", err)
	}
	if comp.perEntry[0] != PesosToMoney(800) {
		t.Errorf("compensation = %v, want ₱800.00", comp.perEntry[0])
	}
	if comp.grandTotal != PesosToMoney(800) {
		t.Errorf("grand total = %v, want ₱800.00", comp.grandTotal)
	}
}

func TestComputeCompensationSharedEntry(t *testing.T) {
	// A statistician shared across 4 groups at ₱500 contributes ₱2000 to the
	// grand total, split ₱500 to each group subtotal.
	req := tertiaryFinalRequest(4,
		models.PanelAssignment{ID: 1, Member: member(9, "Stat", 0), Roles: []models.Role{models.RoleStatistician}, GroupScope: models.SharedGroupScope},
	)

	totals, _, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	comp, err := computeCompensation(totals, req, DefaultRateTable())
	if err != nil {
		t.Fatalf("computeCompensation() error = %v", err)
	}
	if comp.grandTotal != PesosToMoney(2000) {
		t.Errorf("grand total = %v, want ₱2000.00", comp.grandTotal)
	}
	for _, gt := range comp.groupTotals {
		if gt.Total != PesosToMoney(500) {
			t.Errorf("group %d subtotal = %v, want ₱500.00", gt.GroupID, gt.Total)
		}
	}
}

func TestComputeCompensationGroupTotalsSumToGrandTotal(t *testing.T) {
	// Three groups sharing a statistician: ₱1500 does not divide evenly by 3
	// in whole pesos once mixed with group-scoped fees, and the split must
	// still reconcile exactly.
	req := tertiaryFinalRequest(3,
		models.PanelAssignment{ID: 1, Member: member(1, "Chair", 0), Roles: []models.Role{models.RoleChairperson}, GroupScope: 1},
		models.PanelAssignment{ID: 2, Member: member(2, "Adv", 0), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 2},
		models.PanelAssignment{ID: 3, Member: member(9, "Stat", 0), Roles: []models.Role{models.RoleStatistician}, GroupScope: models.SharedGroupScope},
		models.PanelAssignment{ID: 4, Member: member(8, "Sec", 0), Roles: []models.Role{models.RoleSecretary}, GroupScope: models.SharedGroupScope},
	)

	totals, _, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	comp, err := computeCompensation(totals, req, DefaultRateTable())
	if err != nil {
		t.Fatalf("computeCompensation() error = %v", err)
	}

	var entrySum, groupSum Money
	for _, c := range comp.perEntry {
		entrySum += c
	}
	for _, gt := range comp.groupTotals {
		groupSum += gt.Total
	}
	if entrySum != comp.grandTotal {
		t.Errorf("sum of entries = %v, grand total = %v", entrySum, comp.grandTotal)
	}
	if groupSum != comp.grandTotal {
		t.Errorf("sum of group subtotals = %v, grand total = %v", groupSum, comp.grandTotal)
	}
}

func TestComputeCompensationMultiRoleAssignment(t *testing.T) {
	// One assignment carrying two roles earns both fees.
	req := tertiaryFinalRequest(1,
		models.PanelAssignment{ID: 1, Member: member(1, "A", 0), Roles: []models.Role{models.RoleSecretary, models.RoleValidator}, GroupScope: 1},
	)

	totals, _, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	comp, err := computeCompensation(totals, req, DefaultRateTable())
	if err != nil {
		t.Fatalf("computeCompensation() error = %v", err)
	}
	if comp.grandTotal != PesosToMoney(500) {
		t.Errorf("grand total = %v, want ₱500.00 (₱250 secretary + ₱250 validator)", comp.grandTotal)
	}
}

func TestComputeCompensationPackageQuotes(t *testing.T) {
	req := tertiaryFinalRequest(1,
		models.PanelAssignment{ID: 1, Member: member(1, "A", 0), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
	)
	req.Groups[0].Students = []string{"S1", "S2", "S3", "S4"}

	totals, _, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	comp, err := computeCompensation(totals, req, DefaultRateTable())
	if err != nil {
		t.Fatalf("computeCompensation() error = %v", err)
	}

	if len(comp.packages) != 2 {
		t.Fatalf("got %d package quotes, want 2", len(comp.packages))
	}
	var quant *PackageQuote
	for i := range comp.packages {
		if comp.packages[i].Name == "Pure Quantitative" {
			quant = &comp.packages[i]
		}
	}
	if quant == nil {
		t.Fatal("no Pure Quantitative quote")
	}
	// Both figures are exposed unmodified; the itemized total is not replaced.
	if quant.Price != PesosToMoney(5100) {
		t.Errorf("package price = %v, want ₱5100.00", quant.Price)
	}
	if comp.grandTotal != PesosToMoney(500) {
		t.Errorf("itemized total = %v, want ₱500.00", comp.grandTotal)
	}

	if len(quant.PerStudent) != 1 {
		t.Fatalf("got %d per-student quotes, want 1", len(quant.PerStudent))
	}
	ps := quant.PerStudent[0]
	if ps.Students != 4 || len(ps.Shares) != 4 {
		t.Fatalf("per-student quote = %+v, want 4 shares", ps)
	}
	var sum Money
	for _, share := range ps.Shares {
		sum += share
	}
	if sum != quant.Price {
		t.Errorf("per-student shares sum to %v, want %v", sum, quant.Price)
	}
}

func TestComputeCompensationPerStudentEligibilityBounds(t *testing.T) {
	tests := []struct {
		students int
		eligible bool
	}{
		{students: 2, eligible: false},
		{students: 3, eligible: true},
		{students: 5, eligible: true},
		{students: 6, eligible: false},
	}
	for _, tt := range tests {
		req := tertiaryFinalRequest(1,
			models.PanelAssignment{ID: 1, Member: member(1, "A", 0), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
		)
		for i := 0; i < tt.students; i++ {
			req.Groups[0].Students = append(req.Groups[0].Students, "S")
		}

		totals, _, err := aggregate(req)
		if err != nil {
			t.Fatalf("aggregate() error = %v", err)
		}
		comp, err := computeCompensation(totals, req, DefaultRateTable())
		if err != nil {
			t.Fatalf("computeCompensation() error = %v", err)
		}
		got := len(comp.packages[0].PerStudent) > 0
		if got != tt.eligible {
			t.Errorf("%d students: per-student quote = %v, want %v", tt.students, got, tt.eligible)
		}
	}
}
