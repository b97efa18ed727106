package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

const survivalYAML = `
name: survival
description: Get fed without running out of money.
planner:
  strategy: minimize-cost
  max_expansions: 5000
start:
  has_money: true
  hunger: 70
goal:
  fed: true
  hunger: {lte: 30}
actions:
  - name: buy_food
    preconditions:
      has_money: true
    effects:
      - cost: 2
        mutations:
          - {op: set, key: has_food, value: true}
          - {op: set, key: has_money, value: false}
  - name: eat
    preconditions:
      has_food: true
    effects:
      - cost: 1
        mutations:
          - {op: set, key: fed, value: true}
          - {op: decrement, key: hunger, value: 60}
          - {op: set, key: has_food, value: false}
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}
	return path
}

func TestLoader_LoadFile_YAML(t *testing.T) {
	path := writeScenario(t, "survival.yaml", survivalYAML)

	loader := NewLoader()
	scn, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if scn.Name != "survival" {
		t.Errorf("Name = %q, want %q", scn.Name, "survival")
	}
	if scn.Planner.Strategy != "minimize-cost" {
		t.Errorf("Planner.Strategy = %q, want %q", scn.Planner.Strategy, "minimize-cost")
	}
	if scn.Planner.MaxExpansions == nil || *scn.Planner.MaxExpansions != 5000 {
		t.Errorf("Planner.MaxExpansions = %v, want 5000", scn.Planner.MaxExpansions)
	}
	if len(scn.Start) != 2 {
		t.Errorf("len(Start) = %d, want 2", len(scn.Start))
	}
	if len(scn.Goal) != 2 {
		t.Errorf("len(Goal) = %d, want 2", len(scn.Goal))
	}
	if len(scn.Actions) != 2 {
		t.Fatalf("len(Actions) = %d, want 2", len(scn.Actions))
	}
	if scn.Actions[0].Name != "buy_food" {
		t.Errorf("Actions[0].Name = %q, want %q", scn.Actions[0].Name, "buy_food")
	}
	eff := scn.Actions[0].Effects[0]
	if eff.Cost == nil || *eff.Cost != 2 {
		t.Errorf("buy_food cost = %v, want 2", eff.Cost)
	}
	if len(eff.Mutations) != 2 {
		t.Errorf("buy_food mutations = %d, want 2", len(eff.Mutations))
	}
	if eff.Mutations[0].Op != "set" || eff.Mutations[0].Key != "has_food" {
		t.Errorf("first mutation = %+v, want set has_food", eff.Mutations[0])
	}
}

func TestLoader_LoadFile_JSON(t *testing.T) {
	content := `{
  "name": "survival",
  "start": {"hunger": 70},
  "goal": {"fed": true},
  "actions": [
    {
      "name": "eat",
      "effects": [
        {"mutations": [{"op": "set", "key": "fed", "value": true}]}
      ]
    }
  ]
}`
	path := writeScenario(t, "survival.json", content)

	loader := NewLoader()
	scn, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if scn.Name != "survival" {
		t.Errorf("Name = %q, want %q", scn.Name, "survival")
	}
	if len(scn.Actions) != 1 || scn.Actions[0].Name != "eat" {
		t.Errorf("Actions = %+v, want one action named eat", scn.Actions)
	}
}

// JSON numbers must keep their integral kind: a goal of hunger <= 30
// never matches an int-valued state if 30 decodes as a float.
func TestLoader_JSONNumbersStayIntegral(t *testing.T) {
	content := `{
  "name": "kinds",
  "start": {"hunger": 70, "stamina": 0.5},
  "goal": {"hunger": {"lte": 30}},
  "actions": [
    {
      "name": "rest",
      "effects": [
        {"mutations": [{"op": "decrement", "key": "hunger", "value": 40}]}
      ]
    }
  ]
}`
	loader := NewLoader()
	scn, err := loader.LoadString(content, FormatJSON)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	compiled, err := scn.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	hunger, _ := compiled.Start.Get("hunger")
	if hunger.Kind() != world.KindInt {
		t.Errorf("hunger kind = %v, want int", hunger.Kind())
	}
	stamina, _ := compiled.Start.Get("stamina")
	if stamina.Kind() != world.KindFloat {
		t.Errorf("stamina kind = %v, want float", stamina.Kind())
	}
	cond, _ := compiled.Goal.Condition("hunger")
	if cond.Value().Kind() != world.KindInt {
		t.Errorf("goal operand kind = %v, want int", cond.Value().Kind())
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadFile("/nonexistent/scenario.yaml")
	if !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("LoadFile() error = %v, want ErrCatalogNotFound", err)
	}
}

func TestLoader_LoadFile_Directory(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadFile(t.TempDir())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("LoadFile() error = %v, want ErrInvalidFormat", err)
	}
}

func TestLoader_LoadFile_UnsupportedExtension(t *testing.T) {
	path := writeScenario(t, "scenario.txt", "name: nope")

	loader := NewLoader()
	_, err := loader.LoadFile(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadFile() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoader_MalformedDocument(t *testing.T) {
	loader := NewLoader()

	if _, err := loader.LoadString("{not yaml: [", FormatYAML); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("LoadString(yaml) error = %v, want ErrInvalidFormat", err)
	}
	if _, err := loader.LoadString("{broken", FormatJSON); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("LoadString(json) error = %v, want ErrInvalidFormat", err)
	}
}

func TestLoader_UnsupportedFormatToken(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadString("name: x", Format("toml"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadString() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoader_ValidationFailure(t *testing.T) {
	content := `
name: ""
actions:
  - name: eat
    effects: []
`
	loader := NewLoader()
	_, err := loader.LoadString(content, FormatYAML)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("LoadString() error = %v, want ErrValidationFailed", err)
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("LoadString() error = %v, want wrapped ValidationErrors", err)
	}
	if len(verrs) != 2 {
		t.Errorf("len(ValidationErrors) = %d, want 2 (%v)", len(verrs), verrs)
	}
}

func TestLoader_ValidationDisabled(t *testing.T) {
	content := `
name: ""
actions:
  - name: eat
    effects: []
`
	loader := NewLoaderWithOptions(WithValidation(false))
	scn, err := loader.LoadString(content, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if scn.Name != "" {
		t.Errorf("Name = %q, want empty", scn.Name)
	}
}

func TestLoader_LoadBytes(t *testing.T) {
	loader := NewLoader()
	scn, err := loader.LoadBytes([]byte(survivalYAML), FormatYAML)
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	if scn.Name != "survival" {
		t.Errorf("Name = %q, want %q", scn.Name, "survival")
	}
}

func TestLoader_EnvExpansion(t *testing.T) {
	t.Setenv("SCENARIO_NAME", "from-env")

	content := `
name: ${SCENARIO_NAME}
goal:
  fed: true
actions:
  - name: eat
    effects:
      - mutations:
          - {op: set, key: fed, value: true}
`
	loader := NewLoader()
	scn, err := loader.LoadString(content, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if scn.Name != "from-env" {
		t.Errorf("Name = %q, want %q", scn.Name, "from-env")
	}
}

func TestLoader_EnvExpansionDefault(t *testing.T) {
	content := `
name: ${UNSET_SCENARIO_NAME:-fallback}
goal:
  fed: true
actions:
  - name: eat
    effects:
      - mutations:
          - {op: set, key: fed, value: true}
`
	loader := NewLoader()
	scn, err := loader.LoadString(content, FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if scn.Name != "fallback" {
		t.Errorf("Name = %q, want %q", scn.Name, "fallback")
	}
}

func TestLoader_StrictEnvMissing(t *testing.T) {
	loader := NewLoaderWithOptions(WithStrictEnv(true))
	_, err := loader.LoadString("name: ${DEFINITELY_UNSET_VAR_42}", FormatYAML)
	if !errors.Is(err, ErrMissingEnvVar) {
		t.Errorf("LoadString() error = %v, want ErrMissingEnvVar", err)
	}
}

func TestLoader_EnvExpansionDisabled(t *testing.T) {
	t.Setenv("SCENARIO_NAME", "from-env")

	loader := NewLoaderWithOptions(WithEnvExpansion(false), WithValidation(false))
	scn, err := loader.LoadString("name: ${SCENARIO_NAME}", FormatYAML)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if scn.Name != "${SCENARIO_NAME}" {
		t.Errorf("Name = %q, want the literal reference", scn.Name)
	}
}
