// Package engine implements the appearance-limit and compensation rule engine
// for defense panel requests. Evaluate is a pure function of an immutable
// request snapshot: it aggregates per-(member, role) appearance counts, applies
// standalone and department combined limits, prices the request and classifies
// whether it needs a justification document. No I/O, no shared state; callers
// may evaluate different requests concurrently.
package engine

import (
	"sort"

	"github.com/mlreyes/panelhub/internal/app/models"
)

// Entry is the evaluated record for one (member, role) pair.
type Entry struct {
	MemberID        int64       `json:"memberId"`
	MemberName      string      `json:"memberName"`
	Role            models.Role `json:"role"`
	GroupScopes     []int64     `json:"groupScopes"`
	Historical      int         `json:"historicalCount"`
	Contributed     int         `json:"contributedCount"`
	Total           int         `json:"totalCount"`
	Limit           int         `json:"limit"`
	CombinedRule    bool        `json:"combinedRule"`
	IsFlagged       bool        `json:"isFlagged"`
	ViolationMargin int         `json:"violationMargin"`
	Compensation    Money       `json:"compensation"`
}

// Evaluation is the full engine output for one request. It is derived data:
// recomputed read-only at every approval stage, never persisted as a source of
// truth.
type Evaluation struct {
	Entries               []Entry        `json:"entries"`
	Violations            []Entry        `json:"violations"`
	Warnings              []Warning      `json:"warnings,omitempty"`
	GroupTotals           []GroupTotal   `json:"groupTotals"`
	GrandTotal            Money          `json:"grandTotal"`
	Packages              []PackageQuote `json:"packages,omitempty"`
	RequiresJustification bool           `json:"requiresJustification"`
}

// Evaluate runs the rule engine over the request. Configuration errors (a
// missing rate or limit entry) and data integrity errors (unknown role, group
// scope matching no group) abort the whole evaluation; no partial financial
// figures are ever returned. Validation warnings (normalized historical
// counts) are carried in the result.
func Evaluate(req *models.DefenseRequest, rt *RateTable) (*Evaluation, error) {
	totals, warnings, err := aggregate(req)
	if err != nil {
		return nil, err
	}

	department := ""
	if req.Department != nil {
		department = req.Department.Code
	}

	violations, err := detectViolations(totals, department, req.ProgramLevel, rt)
	if err != nil {
		return nil, err
	}

	comp, err := computeCompensation(totals, req, rt)
	if err != nil {
		return nil, err
	}

	eval := &Evaluation{
		Entries:     make([]Entry, len(totals)),
		Warnings:    warnings,
		GroupTotals: comp.groupTotals,
		GrandTotal:  comp.grandTotal,
		Packages:    comp.packages,
	}

	for i, total := range totals {
		scopes := make([]int64, 0, len(total.byScope))
		for scope := range total.byScope {
			scopes = append(scopes, scope)
		}
		sort.Slice(scopes, func(a, b int) bool { return scopes[a] < scopes[b] })

		eval.Entries[i] = Entry{
			MemberID:        total.Member.ID,
			MemberName:      total.Member.FullName,
			Role:            total.Role,
			GroupScopes:     scopes,
			Historical:      total.Historical,
			Contributed:     total.Contributed,
			Total:           total.Total,
			Limit:           violations[i].Limit,
			CombinedRule:    violations[i].Combined,
			IsFlagged:       violations[i].Flagged,
			ViolationMargin: violations[i].Margin,
			Compensation:    comp.perEntry[i],
		}
	}

	requires, violating := classify(violations)
	eval.RequiresJustification = requires
	for _, i := range violating {
		eval.Violations = append(eval.Violations, eval.Entries[i])
	}

	return eval, nil
}
