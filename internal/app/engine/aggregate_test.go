package engine

import (
	"errors"
	"testing"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
)

func member(id int64, name string, historical int) models.FacultyMember {
	return models.FacultyMember{ID: id, FullName: name, HistoricalAppearances: historical}
}

func groups(n int) []models.StudentGroup {
	gs := make([]models.StudentGroup, n)
	for i := range gs {
		gs[i] = models.StudentGroup{ID: int64(i + 1), Title: "Group"}
	}
	return gs
}

func findTotal(t *testing.T, totals []*AppearanceTotal, memberID int64, role models.Role) *AppearanceTotal {
	t.Helper()
	for _, total := range totals {
		if total.Member.ID == memberID && total.Role == role {
			return total
		}
	}
	t.Fatalf("no total for member %d role %s", memberID, role)
	return nil
}

func TestAggregateGroupScopedContributesOne(t *testing.T) {
	req := &models.DefenseRequest{
		Groups: groups(3),
		Assignments: []models.PanelAssignment{
			{ID: 1, Member: member(1, "A", 2), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
		},
	}

	totals, warnings, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	total := findTotal(t, totals, 1, models.RoleAdvisor)
	if total.Contributed != 1 || total.Total != 3 {
		t.Errorf("contributed = %d total = %d, want 1 and 3", total.Contributed, total.Total)
	}
}

func TestAggregateSharedContributesOncePerGroup(t *testing.T) {
	// A statistician shared across 4 groups contributes 4 appearances, not 1.
	req := &models.DefenseRequest{
		Groups: groups(4),
		Assignments: []models.PanelAssignment{
			{ID: 1, Member: member(9, "Stat", 0), Roles: []models.Role{models.RoleStatistician}, GroupScope: models.SharedGroupScope},
		},
	}

	totals, _, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	total := findTotal(t, totals, 9, models.RoleStatistician)
	if total.Contributed != 4 {
		t.Errorf("shared contributed = %d, want 4", total.Contributed)
	}
}

func TestAggregateSameRoleAcrossGroupsSums(t *testing.T) {
	req := &models.DefenseRequest{
		Groups: groups(2),
		Assignments: []models.PanelAssignment{
			{ID: 1, Member: member(1, "Dr. X", 7), Roles: []models.Role{models.RoleChairperson}, GroupScope: 1},
			{ID: 2, Member: member(1, "Dr. X", 7), Roles: []models.Role{models.RoleChairperson}, GroupScope: 2},
		},
	}

	totals, _, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	if len(totals) != 1 {
		t.Fatalf("got %d totals, want 1", len(totals))
	}
	if totals[0].Contributed != 2 || totals[0].Total != 9 {
		t.Errorf("contributed = %d total = %d, want 2 and 9", totals[0].Contributed, totals[0].Total)
	}
}

func TestAggregateDifferentRolesTrackedIndependently(t *testing.T) {
	req := &models.DefenseRequest{
		Groups: groups(2),
		Assignments: []models.PanelAssignment{
			{ID: 1, Member: member(1, "A", 3), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
			{ID: 2, Member: member(1, "A", 3), Roles: []models.Role{models.RolePanelMember}, GroupScope: 2},
		},
	}

	totals, _, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("got %d totals, want 2", len(totals))
	}
	advisor := findTotal(t, totals, 1, models.RoleAdvisor)
	panelist := findTotal(t, totals, 1, models.RolePanelMember)
	if advisor.Contributed != 1 || panelist.Contributed != 1 {
		t.Errorf("contributions = %d/%d, want 1/1", advisor.Contributed, panelist.Contributed)
	}
}

func TestAggregateNegativeHistoricalNormalized(t *testing.T) {
	req := &models.DefenseRequest{
		Groups: groups(1),
		Assignments: []models.PanelAssignment{
			{ID: 1, Member: member(1, "A", -3), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
		},
	}

	totals, warnings, err := aggregate(req)
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	if len(warnings) != 1 || warnings[0].MemberID != 1 {
		t.Fatalf("warnings = %v, want one for member 1", warnings)
	}
	if totals[0].Historical != 0 || totals[0].Total != 1 {
		t.Errorf("historical = %d total = %d, want 0 and 1", totals[0].Historical, totals[0].Total)
	}
}

func TestAggregateIntegrityErrors(t *testing.T) {
	tests := []struct {
		name       string
		assignment models.PanelAssignment
	}{
		{
			name:       "unknown role",
			assignment: models.PanelAssignment{ID: 1, Member: member(1, "A", 0), Roles: []models.Role{"MODERATOR"}, GroupScope: 1},
		},
		{
			name:       "group scope matches no group",
			assignment: models.PanelAssignment{ID: 1, Member: member(1, "A", 0), Roles: []models.Role{models.RoleAdvisor}, GroupScope: 7},
		},
		{
			name:       "no roles",
			assignment: models.PanelAssignment{ID: 1, Member: member(1, "A", 0), GroupScope: 1},
		},
		{
			name:       "no member",
			assignment: models.PanelAssignment{ID: 1, Roles: []models.Role{models.RoleAdvisor}, GroupScope: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.DefenseRequest{Groups: groups(2), Assignments: []models.PanelAssignment{tt.assignment}}
			_, _, err := aggregate(req)
			if !errors.Is(err, apperrors.ErrDataIntegrity) {
				t.Errorf("aggregate() error = %v, want ErrDataIntegrity", err)
			}
		})
	}
}

func TestAggregateNoAssignmentsNoOutput(t *testing.T) {
	totals, warnings, err := aggregate(&models.DefenseRequest{Groups: groups(2)})
	if err != nil {
		t.Fatalf("aggregate() error = %v", err)
	}
	if len(totals) != 0 || len(warnings) != 0 {
		t.Errorf("totals = %v warnings = %v, want empty", totals, warnings)
	}
}
