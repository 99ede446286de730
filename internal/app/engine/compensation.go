package engine

import (
	"github.com/mlreyes/panelhub/internal/app/models"
)

// GroupTotal is the compensation subtotal attributed to one student group,
// including the group's pro-rata share of shared assignments.
type GroupTotal struct {
	GroupID int64 `json:"groupId"`
	Total   Money `json:"total"`
}

// PerStudentQuote is the per-student division of a package price for one
// eligible group. Shares sum exactly to the package price; the centavo
// remainder is distributed deterministically.
type PerStudentQuote struct {
	GroupID  int64   `json:"groupId"`
	Students int     `json:"students"`
	Shares   []Money `json:"shares"`
}

// PackageQuote is one flat-rate alternative to the itemized total. The engine
// exposes package and itemized figures side by side; choosing between them is
// the caller's pricing decision, never the engine's.
type PackageQuote struct {
	Name       string            `json:"name"`
	Price      Money             `json:"price"`
	PerStudent []PerStudentQuote `json:"perStudent,omitempty"`
}

// compensationResult carries the money figures derived from aggregated totals.
type compensationResult struct {
	perEntry    []Money
	groupTotals []GroupTotal
	grandTotal  Money
	packages    []PackageQuote
}

// computeCompensation prices the aggregated appearance totals.
//
// Each (member, role) entry earns rate x contributed count; historical
// appearances enter limit checks only and are never paid. Group subtotals sum
// the entries scoped to the group plus an even share of every shared entry,
// with rounding fixed at the division step so subtotals add up exactly to the
// grand total. Package rates applicable to the request are quoted alongside,
// including per-student divisions for groups whose size falls in the package's
// eligible range.
func computeCompensation(totals []*AppearanceTotal, req *models.DefenseRequest, rt *RateTable) (*compensationResult, error) {
	result := &compensationResult{
		perEntry: make([]Money, len(totals)),
	}

	department := ""
	if req.Department != nil {
		department = req.Department.Code
	}

	groupShare := make(map[int64]Money)

	for i, total := range totals {
		rate, err := rt.RateFor(total.Role, req.ProgramLevel, department, req.DefenseType)
		if err != nil {
			return nil, err
		}

		result.perEntry[i] = rate.Mul(total.Contributed)
		result.grandTotal += result.perEntry[i]

		for scope, count := range total.byScope {
			amount := rate.Mul(count)
			if scope != models.SharedGroupScope {
				groupShare[scope] += amount
				continue
			}
			// Shared entries are split evenly across the groups they serve.
			shares := amount.SplitEven(len(req.Groups))
			for j, group := range req.Groups {
				groupShare[group.ID] += shares[j]
			}
		}
	}

	for _, group := range req.Groups {
		result.groupTotals = append(result.groupTotals, GroupTotal{
			GroupID: group.ID,
			Total:   groupShare[group.ID],
		})
	}

	for _, pkg := range rt.PackagesFor(department, req.ProgramLevel, req.DefenseType) {
		quote := PackageQuote{Name: pkg.Name, Price: pkg.Price}
		if pkg.PerStudentMin > 0 {
			for _, group := range req.Groups {
				n := len(group.Students)
				if n < pkg.PerStudentMin || n > pkg.PerStudentMax {
					continue
				}
				quote.PerStudent = append(quote.PerStudent, PerStudentQuote{
					GroupID:  group.ID,
					Students: n,
					Shares:   pkg.Price.SplitEven(n),
				})
			}
		}
		result.packages = append(result.packages, quote)
	}

	return result, nil
}
