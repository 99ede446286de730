package engine

import (
	"fmt"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
)

// AppearanceTotal is the aggregated appearance count for one (member, role)
// pair across the whole request. Historical is the member's count accumulated
// before this request; Contributed is what this request adds.
type AppearanceTotal struct {
	Member      models.FacultyMember `json:"member"`
	Role        models.Role          `json:"role"`
	Historical  int                  `json:"historical"`
	Contributed int                  `json:"contributed"`
	Total       int                  `json:"total"`

	// byScope tracks contributed appearances per group scope. A shared
	// assignment is recorded under the shared sentinel with its multiplied
	// count; the calculator pro-rates it across groups.
	byScope map[int64]int
}

// Warning records a non-fatal input normalization applied during aggregation.
type Warning struct {
	MemberID int64  `json:"memberId"`
	Message  string `json:"message"`
}

// aggregate computes per-(member, role) appearance totals for the request.
//
// Contribution policy: an assignment scoped to one group contributes exactly 1
// appearance; a shared assignment contributes one appearance per group the
// request has, because a shared specialist is counted and paid once per defense
// event, not once per request. The same member holding the same role in several
// groups sums across groups; different roles are tracked independently.
//
// Negative or missing historical counts normalize to 0 with a recorded warning.
// An assignment referencing an unknown role or a group scope matching no group
// aborts the aggregation.
func aggregate(req *models.DefenseRequest) ([]*AppearanceTotal, []Warning, error) {
	type totalKey struct {
		memberID int64
		role     models.Role
	}

	groupCount := len(req.Groups)
	index := make(map[totalKey]*AppearanceTotal)
	var totals []*AppearanceTotal
	var warnings []Warning
	warned := make(map[int64]bool)

	for _, assignment := range req.Assignments {
		if assignment.Member.ID <= 0 {
			return nil, nil, apperrors.NewDataIntegrityError(
				fmt.Sprintf("panel assignment %d has no faculty member", assignment.ID))
		}
		if len(assignment.Roles) == 0 {
			return nil, nil, apperrors.NewDataIntegrityError(
				fmt.Sprintf("panel assignment %d for %s carries no roles", assignment.ID, assignment.Member.FullName))
		}
		if !assignment.IsShared() && req.GroupByID(assignment.GroupScope) == nil {
			return nil, nil, apperrors.NewDataIntegrityError(
				fmt.Sprintf("panel assignment %d references group %d which is not part of the request", assignment.ID, assignment.GroupScope))
		}

		historical := assignment.Member.HistoricalAppearances
		if historical < 0 {
			if !warned[assignment.Member.ID] {
				warnings = append(warnings, Warning{
					MemberID: assignment.Member.ID,
					Message:  fmt.Sprintf("negative historical appearance count %d for %s normalized to 0", historical, assignment.Member.FullName),
				})
				warned[assignment.Member.ID] = true
			}
			historical = 0
		}

		contribution := 1
		if assignment.IsShared() {
			contribution = groupCount
		}

		for _, role := range assignment.Roles {
			if !role.IsValid() {
				return nil, nil, apperrors.NewDataIntegrityError(
					fmt.Sprintf("panel assignment %d for %s carries unknown role %q", assignment.ID, assignment.Member.FullName, role))
			}

			key := totalKey{memberID: assignment.Member.ID, role: role}
			total, ok := index[key]
			if !ok {
				total = &AppearanceTotal{
					Member:     assignment.Member,
					Role:       role,
					Historical: historical,
					byScope:    make(map[int64]int),
				}
				total.Member.HistoricalAppearances = historical
				index[key] = total
				totals = append(totals, total)
			}
			total.Contributed += contribution
			total.byScope[assignment.GroupScope] += contribution
		}
	}

	for _, total := range totals {
		total.Total = total.Historical + total.Contributed
	}

	return totals, warnings, nil
}
