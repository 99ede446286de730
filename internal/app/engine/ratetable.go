package engine

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
)

// rateKey identifies one honorarium rate row.
type rateKey struct {
	Role    models.Role
	Level   models.ProgramLevel
	Defense models.DefenseType
}

// limitKey identifies one standalone appearance limit row.
type limitKey struct {
	Role  models.Role
	Level models.ProgramLevel
}

// CombinedRule is a department-scoped cap over the summed appearances of
// several roles together, overriding their standalone limits. Roles not named
// by the rule keep their own standalone limits.
type CombinedRule struct {
	Department string
	Level      models.ProgramLevel
	Roles      []models.Role
	Limit      int
}

// Covers reports whether the rule includes the given role.
func (c CombinedRule) Covers(role models.Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PackageRate is a flat bundled price for an entire defense, offered alongside
// the itemized sum. When PerStudentMin/Max are set, groups with a student count
// in that range may also be quoted a per-student division of the price.
type PackageRate struct {
	Name          string
	Department    string // empty matches every department
	Level         models.ProgramLevel
	Defense       models.DefenseType
	Price         Money
	PerStudentMin int
	PerStudentMax int
}

// RateTable answers rate and limit lookups for the engine. Lookups are total
// over the fixed enumerations: an unmatched triple is a configuration error,
// never a silent default.
type RateTable struct {
	rates     map[rateKey]Money
	deptRates map[string]map[rateKey]Money
	limits    map[limitKey]int
	combined  []CombinedRule
	packages  []PackageRate
}

// RateFor returns the per-appearance honorarium for the role at the given
// program level, department and defense type. Department-scoped rate overrides
// take precedence over the level-wide rate.
func (t *RateTable) RateFor(role models.Role, level models.ProgramLevel, department string, defense models.DefenseType) (Money, error) {
	key := rateKey{Role: role, Level: level, Defense: defense}
	if overrides, ok := t.deptRates[department]; ok {
		if rate, ok := overrides[key]; ok {
			return rate, nil
		}
	}
	if rate, ok := t.rates[key]; ok {
		return rate, nil
	}
	return 0, apperrors.NewConfigurationError(
		fmt.Sprintf("no rate configured for role %s at level %s (%s, department %s)", role, level, defense, department))
}

// CombinedRuleFor returns the combined-limit rule covering the role for the
// department and level, or nil when the role is evaluated standalone.
func (t *RateTable) CombinedRuleFor(department string, level models.ProgramLevel, role models.Role) *CombinedRule {
	for i := range t.combined {
		rule := &t.combined[i]
		if rule.Department == department && rule.Level == level && rule.Covers(role) {
			return rule
		}
	}
	return nil
}

// LimitFor returns the standalone appearance limit for the role at the given
// level. Callers must consult CombinedRuleFor first; a combined rule overrides
// the standalone limit for the roles it names.
func (t *RateTable) LimitFor(role models.Role, level models.ProgramLevel) (int, error) {
	if limit, ok := t.limits[limitKey{Role: role, Level: level}]; ok {
		return limit, nil
	}
	return 0, apperrors.NewConfigurationError(
		fmt.Sprintf("no appearance limit configured for role %s at level %s", role, level))
}

// PackagesFor returns the package rates applicable to the department, level and
// defense type. Empty when no bundle is offered.
func (t *RateTable) PackagesFor(department string, level models.ProgramLevel, defense models.DefenseType) []PackageRate {
	var matched []PackageRate
	for _, p := range t.packages {
		if p.Level != level || p.Defense != defense {
			continue
		}
		if p.Department != "" && p.Department != department {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// defaultRates holds the board-approved honoraria per single appearance, in
// pesos, ordered Advisor, Chairperson, Panel Member, Statistician, Language
// Editor, Secretary, Validator.
var defaultRates = map[models.ProgramLevel]map[models.DefenseType][7]int64{
	models.LevelBasicEducation: {
		models.DefensePreOral: {300, 250, 200, 300, 200, 150, 150},
		models.DefenseFinal:   {350, 300, 250, 350, 250, 200, 200},
	},
	models.LevelTertiary: {
		models.DefensePreOral: {400, 300, 250, 400, 250, 200, 200},
		models.DefenseFinal:   {500, 400, 350, 500, 300, 250, 250},
	},
	models.LevelMasters: {
		models.DefensePreOral: {650, 550, 500, 650, 400, 350, 350},
		models.DefenseFinal:   {800, 700, 600, 800, 500, 400, 400},
	},
	models.LevelDoctorate: {
		models.DefensePreOral: {1000, 800, 750, 1000, 650, 500, 500},
		models.DefenseFinal:   {1200, 1000, 900, 1200, 800, 600, 600},
	},
}

// defaultLimits holds the standalone per-academic-period appearance caps,
// uniform across program levels, same role order as defaultRates.
var defaultLimits = [7]int{10, 5, 10, 30, 30, 10, 10}

// DefaultRateTable builds the rate table from the board-approved schedule:
// the full rate matrix, standalone limits, the SAM combined cap of 10 over
// {Advisor, Chairperson, Panel Member, Secretary, Validator} at Tertiary level
// (Statistician keeps its separate 30 cap), and the research bundle prices.
func DefaultRateTable() *RateTable {
	t := &RateTable{
		rates:     make(map[rateKey]Money),
		deptRates: make(map[string]map[rateKey]Money),
		limits:    make(map[limitKey]int),
	}

	for level, byDefense := range defaultRates {
		for defense, row := range byDefense {
			for i, role := range models.Roles {
				t.rates[rateKey{Role: role, Level: level, Defense: defense}] = PesosToMoney(row[i])
			}
		}
		for i, role := range models.Roles {
			t.limits[limitKey{Role: role, Level: level}] = defaultLimits[i]
		}
	}

	t.combined = []CombinedRule{
		{
			Department: "SAM",
			Level:      models.LevelTertiary,
			Roles: []models.Role{
				models.RoleAdvisor,
				models.RoleChairperson,
				models.RolePanelMember,
				models.RoleSecretary,
				models.RoleValidator,
			},
			Limit: 10,
		},
	}

	t.packages = []PackageRate{
		{Name: "Pure Quantitative", Level: models.LevelTertiary, Defense: models.DefenseFinal, Price: PesosToMoney(5100), PerStudentMin: 3, PerStudentMax: 5},
		{Name: "Pure Quantitative", Level: models.LevelTertiary, Defense: models.DefensePreOral, Price: PesosToMoney(4100), PerStudentMin: 3, PerStudentMax: 5},
		{Name: "Pure Qualitative", Level: models.LevelTertiary, Defense: models.DefenseFinal, Price: PesosToMoney(4600), PerStudentMin: 3, PerStudentMax: 5},
		{Name: "Pure Qualitative", Level: models.LevelTertiary, Defense: models.DefensePreOral, Price: PesosToMoney(3700), PerStudentMin: 3, PerStudentMax: 5},
	}

	return t
}

// rateTableFile mirrors the YAML override schedule an operator can ship in
// place of the built-in one.
type rateTableFile struct {
	Rates []struct {
		Role       string  `yaml:"role"`
		Level      string  `yaml:"level"`
		Department string  `yaml:"department"`
		PreOral    float64 `yaml:"pre_oral"`
		Final      float64 `yaml:"final"`
	} `yaml:"rates"`
	Limits []struct {
		Role  string `yaml:"role"`
		Level string `yaml:"level"`
		Limit int    `yaml:"limit"`
	} `yaml:"limits"`
	CombinedLimits []struct {
		Department string   `yaml:"department"`
		Level      string   `yaml:"level"`
		Roles      []string `yaml:"roles"`
		Limit      int      `yaml:"limit"`
	} `yaml:"combined_limits"`
	Packages []struct {
		Name          string  `yaml:"name"`
		Department    string  `yaml:"department"`
		Level         string  `yaml:"level"`
		Defense       string  `yaml:"defense"`
		Price         float64 `yaml:"price"`
		PerStudentMin int     `yaml:"per_student_min"`
		PerStudentMax int     `yaml:"per_student_max"`
	} `yaml:"packages"`
}

// pesosFromYAML converts a YAML peso amount to centavos, rounding at the
// conversion boundary.
func pesosFromYAML(v float64) Money {
	return Money(math.Round(v * 100))
}

// LoadRateTable reads an operator-provided rate schedule from a YAML file.
// Entries replace the built-in defaults wholesale; a file that omits a section
// leaves the default section in place.
func LoadRateTable(path string) (*RateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate schedule: %w", err)
	}

	var file rateTableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rate schedule: %w", err)
	}

	t := DefaultRateTable()

	if len(file.Rates) > 0 {
		t.rates = make(map[rateKey]Money)
		t.deptRates = make(map[string]map[rateKey]Money)
	}
	for _, row := range file.Rates {
		role, err := models.ParseRole(row.Role)
		if err != nil {
			return nil, fmt.Errorf("rate schedule: %w", err)
		}
		level, err := models.ParseProgramLevel(row.Level)
		if err != nil {
			return nil, fmt.Errorf("rate schedule: %w", err)
		}
		target := t.rates
		if row.Department != "" {
			if t.deptRates[row.Department] == nil {
				t.deptRates[row.Department] = make(map[rateKey]Money)
			}
			target = t.deptRates[row.Department]
		}
		target[rateKey{Role: role, Level: level, Defense: models.DefensePreOral}] = pesosFromYAML(row.PreOral)
		target[rateKey{Role: role, Level: level, Defense: models.DefenseFinal}] = pesosFromYAML(row.Final)
	}

	if len(file.Limits) > 0 {
		t.limits = make(map[limitKey]int)
	}
	for _, row := range file.Limits {
		role, err := models.ParseRole(row.Role)
		if err != nil {
			return nil, fmt.Errorf("rate schedule: %w", err)
		}
		level, err := models.ParseProgramLevel(row.Level)
		if err != nil {
			return nil, fmt.Errorf("rate schedule: %w", err)
		}
		t.limits[limitKey{Role: role, Level: level}] = row.Limit
	}

	if len(file.CombinedLimits) > 0 {
		t.combined = nil
	}
	for _, row := range file.CombinedLimits {
		level, err := models.ParseProgramLevel(row.Level)
		if err != nil {
			return nil, fmt.Errorf("rate schedule: %w", err)
		}
		rule := CombinedRule{Department: row.Department, Level: level, Limit: row.Limit}
		for _, label := range row.Roles {
			role, err := models.ParseRole(label)
			if err != nil {
				return nil, fmt.Errorf("rate schedule: %w", err)
			}
			rule.Roles = append(rule.Roles, role)
		}
		t.combined = append(t.combined, rule)
	}

	if len(file.Packages) > 0 {
		t.packages = nil
	}
	for _, row := range file.Packages {
		level, err := models.ParseProgramLevel(row.Level)
		if err != nil {
			return nil, fmt.Errorf("rate schedule: %w", err)
		}
		defense, err := models.ParseDefenseType(row.Defense)
		if err != nil {
			return nil, fmt.Errorf("rate schedule: %w", err)
		}
		t.packages = append(t.packages, PackageRate{
			Name:          row.Name,
			Department:    row.Department,
			Level:         level,
			Defense:       defense,
			Price:         pesosFromYAML(row.Price),
			PerStudentMin: row.PerStudentMin,
			PerStudentMax: row.PerStudentMax,
		})
	}

	return t, nil
}
