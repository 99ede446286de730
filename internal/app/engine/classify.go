package engine

// classify folds the per-entry flags into the overall request signal: the
// request requires a justification document if and only if at least one
// (member, role) entry is flagged. The indices of the violating entries are
// returned for display in the justification requirement.
func classify(violations []violation) (requiresJustification bool, violating []int) {
	for i, v := range violations {
		if v.Flagged {
			requiresJustification = true
			violating = append(violating, i)
		}
	}
	return requiresJustification, violating
}
