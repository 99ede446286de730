package models

import (
	"fmt"
	"strings"
)

// Role is the canonical panel role enumeration. Incoming data may use the
// synonym labels "Adviser" for Advisor and "Chairman" for Chairperson; both are
// folded into the canonical value by ParseRole at every data-entry boundary so
// synonym strings never reach rate or limit lookups.
type Role string

const (
	RoleAdvisor        Role = "ADVISOR"
	RoleChairperson    Role = "CHAIRPERSON"
	RolePanelMember    Role = "PANEL_MEMBER"
	RoleStatistician   Role = "STATISTICIAN"
	RoleLanguageEditor Role = "LANGUAGE_EDITOR"
	RoleSecretary      Role = "SECRETARY"
	RoleValidator      Role = "VALIDATOR"
)

// Roles lists every canonical role.
var Roles = []Role{
	RoleAdvisor,
	RoleChairperson,
	RolePanelMember,
	RoleStatistician,
	RoleLanguageEditor,
	RoleSecretary,
	RoleValidator,
}

// ParseRole normalizes a role label to its canonical Role value.
func ParseRole(label string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch normalized {
	case "ADVISOR", "ADVISER":
		return RoleAdvisor, nil
	case "CHAIRPERSON", "CHAIRMAN":
		return RoleChairperson, nil
	case "PANEL_MEMBER", "PANELIST":
		return RolePanelMember, nil
	case "STATISTICIAN":
		return RoleStatistician, nil
	case "LANGUAGE_EDITOR":
		return RoleLanguageEditor, nil
	case "SECRETARY":
		return RoleSecretary, nil
	case "VALIDATOR":
		return RoleValidator, nil
	}
	return "", fmt.Errorf("unknown panel role %q", label)
}

// IsValid reports whether the role is one of the canonical values.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ProgramLevel determines which row of the rate table applies.
type ProgramLevel string

const (
	LevelBasicEducation ProgramLevel = "BASIC_EDUCATION"
	LevelTertiary       ProgramLevel = "TERTIARY"
	LevelMasters        ProgramLevel = "MASTERS"
	LevelDoctorate      ProgramLevel = "DOCTORATE"
)

// ProgramLevels lists every program level.
var ProgramLevels = []ProgramLevel{
	LevelBasicEducation,
	LevelTertiary,
	LevelMasters,
	LevelDoctorate,
}

// ParseProgramLevel normalizes a program level label.
func ParseProgramLevel(label string) (ProgramLevel, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch normalized {
	case "BASIC_EDUCATION", "BASIC_ED":
		return LevelBasicEducation, nil
	case "TERTIARY":
		return LevelTertiary, nil
	case "MASTERS", "MASTERS/FS", "FS":
		return LevelMasters, nil
	case "DOCTORATE", "DOCTORAL":
		return LevelDoctorate, nil
	}
	return "", fmt.Errorf("unknown program level %q", label)
}

// DefenseType distinguishes the two defense events; rates differ between them.
type DefenseType string

const (
	DefensePreOral DefenseType = "PRE_ORAL"
	DefenseFinal   DefenseType = "FINAL"
)

// ParseDefenseType normalizes a defense type label.
func ParseDefenseType(label string) (DefenseType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch normalized {
	case "PRE_ORAL", "PREORAL":
		return DefensePreOral, nil
	case "FINAL":
		return DefenseFinal, nil
	}
	return "", fmt.Errorf("unknown defense type %q", label)
}

// WorkflowStage is the approval pipeline position of a defense request.
// Requests move Draft -> Research Center -> VPAA -> Dean -> Budget -> Approved;
// any review stage may reject.
type WorkflowStage string

const (
	StageDraft          WorkflowStage = "DRAFT"
	StageResearchCenter WorkflowStage = "RESEARCH_CENTER"
	StageVPAA           WorkflowStage = "VPAA"
	StageDean           WorkflowStage = "DEAN"
	StageBudget         WorkflowStage = "BUDGET"
	StageApproved       WorkflowStage = "APPROVED"
	StageRejected       WorkflowStage = "REJECTED"
)

// RoleType defines the account role of a system user. Reviewer roles map
// one-to-one onto the workflow stages they are allowed to act on.
type RoleType string

const (
	RoleFaculty        RoleType = "FACULTY"
	RoleResearchCenter RoleType = "RESEARCH_CENTER"
	RoleVPAA           RoleType = "VPAA"
	RoleDean           RoleType = "DEAN"
	RoleBudget         RoleType = "BUDGET"
)

// SharedGroupScope is the sentinel group scope marking a panel assignment that
// serves every group in the request (typically Statistician or Secretary).
const SharedGroupScope int64 = 0
