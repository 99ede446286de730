package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
)

func TestRateTableRateFor(t *testing.T) {
	rt := DefaultRateTable()

	tests := []struct {
		name    string
		role    models.Role
		level   models.ProgramLevel
		defense models.DefenseType
		want    Money
	}{
		{name: "tertiary final chairperson", role: models.RoleChairperson, level: models.LevelTertiary, defense: models.DefenseFinal, want: PesosToMoney(400)},
		{name: "tertiary final statistician", role: models.RoleStatistician, level: models.LevelTertiary, defense: models.DefenseFinal, want: PesosToMoney(500)},
		{name: "pre-oral rate differs from final", role: models.RoleChairperson, level: models.LevelTertiary, defense: models.DefensePreOral, want: PesosToMoney(300)},
		{name: "doctorate advisor", role: models.RoleAdvisor, level: models.LevelDoctorate, defense: models.DefenseFinal, want: PesosToMoney(1200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rt.RateFor(tt.role, tt.level, "SLAS", tt.defense)
			if err != nil {
				t.Fatalf("RateFor() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RateFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRateTableUnmatchedLookupFails(t *testing.T) {
	// An empty table has no entries at all; every lookup must surface a
	// configuration error rather than defaulting.
	rt := &RateTable{
		rates:     map[rateKey]Money{},
		deptRates: map[string]map[rateKey]Money{},
		limits:    map[limitKey]int{},
	}

	if _, err := rt.RateFor(models.RoleAdvisor, models.LevelTertiary, "SLAS", models.DefenseFinal); !errors.Is(err, apperrors.ErrConfiguration) {
		t.Errorf("RateFor() error = %v, want ErrConfiguration", err)
	}
	if _, err := rt.LimitFor(models.RoleAdvisor, models.LevelTertiary); !errors.Is(err, apperrors.ErrConfiguration) {
		t.Errorf("LimitFor() error = %v, want ErrConfiguration", err)
	}
}

func TestRateTableCombinedRuleFor(t *testing.T) {
	rt := DefaultRateTable()

	tests := []struct {
		name       string
		department string
		level      models.ProgramLevel
		role       models.Role
		wantRule   bool
	}{
		{name: "SAM advisor covered", department: "SAM", level: models.LevelTertiary, role: models.RoleAdvisor, wantRule: true},
		{name: "SAM chairperson covered", department: "SAM", level: models.LevelTertiary, role: models.RoleChairperson, wantRule: true},
		{name: "SAM statistician kept standalone", department: "SAM", level: models.LevelTertiary, role: models.RoleStatistician, wantRule: false},
		{name: "SAM language editor kept standalone", department: "SAM", level: models.LevelTertiary, role: models.RoleLanguageEditor, wantRule: false},
		{name: "other department unaffected", department: "SLAS", level: models.LevelTertiary, role: models.RoleAdvisor, wantRule: false},
		{name: "other level unaffected", department: "SAM", level: models.LevelMasters, role: models.RoleAdvisor, wantRule: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := rt.CombinedRuleFor(tt.department, tt.level, tt.role)
			if (rule != nil) != tt.wantRule {
				t.Errorf("CombinedRuleFor() = %v, wantRule %v", rule, tt.wantRule)
			}
			if rule != nil && rule.Limit != 10 {
				t.Errorf("combined limit = %d, want 10", rule.Limit)
			}
		})
	}
}

func TestRateTablePackagesFor(t *testing.T) {
	rt := DefaultRateTable()

	packages := rt.PackagesFor("SLAS", models.LevelTertiary, models.DefenseFinal)
	if len(packages) != 2 {
		t.Fatalf("PackagesFor() returned %d packages, want 2", len(packages))
	}
	byName := map[string]Money{}
	for _, p := range packages {
		byName[p.Name] = p.Price
	}
	if byName["Pure Quantitative"] != PesosToMoney(5100) {
		t.Errorf("Pure Quantitative final price = %v, want ₱5100.00", byName["Pure Quantitative"])
	}
	if byName["Pure Qualitative"] != PesosToMoney(4600) {
		t.Errorf("Pure Qualitative final price = %v, want ₱4600.00", byName["Pure Qualitative"])
	}

	if got := rt.PackagesFor("SLAS", models.LevelDoctorate, models.DefenseFinal); len(got) != 0 {
		t.Errorf("PackagesFor(doctorate) returned %d packages, want 0", len(got))
	}
}

func TestLoadRateTable(t *testing.T) {
	schedule := `
rates:
  - role: Chairman
    level: Tertiary
    pre_oral: 350.00
    final: 450.50
limits:
  - role: Chairperson
    level: Tertiary
    limit: 6
combined_limits:
  - department: SAM
    level: Tertiary
    roles: [Adviser, Chairman, Panel Member]
    limit: 12
`
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte(schedule), 0o644); err != nil {
		t.Fatal(err)
	}

	rt, err := LoadRateTable(path)
	if err != nil {
		t.Fatalf("LoadRateTable() error = %v", err)
	}

	// Synonym labels in the file resolve to canonical roles.
	rate, err := rt.RateFor(models.RoleChairperson, models.LevelTertiary, "SLAS", models.DefenseFinal)
	if err != nil {
		t.Fatalf("RateFor() error = %v", err)
	}
	if rate != 45050 {
		t.Errorf("loaded final rate = %v, want ₱450.50", rate)
	}

	limit, err := rt.LimitFor(models.RoleChairperson, models.LevelTertiary)
	if err != nil {
		t.Fatalf("LimitFor() error = %v", err)
	}
	if limit != 6 {
		t.Errorf("loaded limit = %d, want 6", limit)
	}

	rule := rt.CombinedRuleFor("SAM", models.LevelTertiary, models.RoleAdvisor)
	if rule == nil || rule.Limit != 12 {
		t.Errorf("loaded combined rule = %v, want limit 12", rule)
	}
	if rt.CombinedRuleFor("SAM", models.LevelTertiary, models.RoleSecretary) != nil {
		t.Error("secretary should not be covered by the replaced combined rule")
	}

	// Replacing the rate section drops entries the file does not provide.
	if _, err := rt.RateFor(models.RoleAdvisor, models.LevelTertiary, "SLAS", models.DefenseFinal); !errors.Is(err, apperrors.ErrConfiguration) {
		t.Errorf("RateFor(advisor) error = %v, want ErrConfiguration", err)
	}
}

func TestLoadRateTableRejectsUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte("limits:\n  - role: Moderator\n    level: Tertiary\n    limit: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRateTable(path); err == nil {
		t.Error("LoadRateTable() accepted an unknown role label")
	}
}
