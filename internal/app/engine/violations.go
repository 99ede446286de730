package engine

import (
	"github.com/mlreyes/panelhub/internal/app/models"
)

// violation is the limit-check outcome for one appearance total. Limits are
// inclusive: a total equal to its limit passes. Margin is the excess over the
// limit, 0 when compliant.
type violation struct {
	Flagged  bool
	Margin   int
	Limit    int
	Combined bool
}

// detectViolations applies the rate table limits to aggregated totals.
//
// When the department carries a combined rule covering a role, the member's
// appearances are summed across every covered role the member holds (the
// historical count enters the sum once, since it is tracked per member, not per
// role) and all covered entries of that member are flagged together when the
// combined limit is exceeded. Roles the rule leaves out are compared against
// their standalone limits, so a member can be flagged on the combined rule
// while compliant standalone, or the other way around.
func detectViolations(totals []*AppearanceTotal, department string, level models.ProgramLevel, rt *RateTable) ([]violation, error) {
	results := make([]violation, len(totals))

	// Combined sums per member, over covered roles only.
	combinedContrib := make(map[int64]int)
	combinedHist := make(map[int64]int)
	for _, total := range totals {
		if rt.CombinedRuleFor(department, level, total.Role) == nil {
			continue
		}
		combinedContrib[total.Member.ID] += total.Contributed
		combinedHist[total.Member.ID] = total.Historical
	}

	for i, total := range totals {
		if rule := rt.CombinedRuleFor(department, level, total.Role); rule != nil {
			combinedTotal := combinedHist[total.Member.ID] + combinedContrib[total.Member.ID]
			results[i] = violation{Limit: rule.Limit, Combined: true}
			if combinedTotal > rule.Limit {
				results[i].Flagged = true
				results[i].Margin = combinedTotal - rule.Limit
			}
			continue
		}

		limit, err := rt.LimitFor(total.Role, level)
		if err != nil {
			return nil, err
		}
		results[i] = violation{Limit: limit}
		if total.Total > limit {
			results[i].Flagged = true
			results[i].Margin = total.Total - limit
		}
	}

	return results, nil
}
