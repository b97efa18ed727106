package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/goap-go/domain/planner"
)

// testLogger creates a logger that writes to a buffer for testing.
func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := bolt.NewJSONHandler(buf)
	logger := bolt.New(handler).SetLevel(bolt.TRACE)
	return logger, buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != FormatConsole {
		t.Errorf("Format = %s, want %s", config.Format, FormatConsole)
	}
}

func TestProductionConfig(t *testing.T) {
	t.Parallel()

	config := ProductionConfig()
	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != FormatJSON {
		t.Errorf("Format = %s, want %s", config.Format, FormatJSON)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO},
		{"", bolt.INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%s) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFieldOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"request id", RequestID("req-1"), `"request_id":"req-1"`},
		{"strategy", Strategy(planner.StrategyMinimizeActions), `"strategy":"minimize-actions"`},
		{"goal size", GoalSize(3), `"goal_size":3`},
		{"action count", ActionCount(12), `"action_count":12`},
		{"found", Found(true), `"found":true`},
		{"plan length", PlanLength(4), `"plan_length":4`},
		{"plan cost", PlanCost(7), `"plan_cost":7`},
		{"expanded", Expanded(99), `"nodes_expanded":99`},
		{"generated", Generated(120), `"nodes_generated":120`},
		{"reopened", Reopened(2), `"nodes_reopened":2`},
		{"frontier peak", FrontierPeak(15), `"frontier_peak":15`},
		{"budget exhausted", BudgetExhausted(true), `"budget_exhausted":true`},
		{"duration", Duration(250 * time.Millisecond), `"duration_ms":250`},
		{"cached", Cached(false), `"cached":false`},
		{"cache key", CacheKey("abc"), `"cache_key":"abc"`},
		{"component", Component("solver"), `"component":"solver"`},
		{"path", Path("/tmp/s.yaml"), `"path":"/tmp/s.yaml"`},
		{"scenario", Scenario("grocery"), `"scenario":"grocery"`},
		{"str", Str("custom", "value"), `"custom":"value"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := testLogger()
			event := logger.Info()
			tt.field(event).Msg("test")

			if !bytes.Contains(buf.Bytes(), []byte(tt.want)) {
				t.Errorf("output missing %s: %s", tt.want, buf.String())
			}
		})
	}
}

func TestErrorField(t *testing.T) {
	t.Parallel()

	t.Run("with error", func(t *testing.T) {
		t.Parallel()

		logger, buf := testLogger()
		event := logger.Info()
		ErrorField(errors.New("search failed"))(event).Msg("test")

		if !bytes.Contains(buf.Bytes(), []byte(`"error":"search failed"`)) {
			t.Errorf("expected error field in output: %s", buf.String())
		}
	})

	t.Run("with nil error", func(t *testing.T) {
		t.Parallel()

		logger, buf := testLogger()
		event := logger.Info()
		ErrorField(nil)(event).Msg("test")

		if bytes.Contains(buf.Bytes(), []byte(`"error"`)) {
			t.Errorf("unexpected error field in output: %s", buf.String())
		}
	})
}

func TestLogEventChaining(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	NewEvent(logger.Info()).
		Add(RequestID("req-9")).
		Add(Found(true)).
		Add(PlanCost(3)).
		Msg("plan found")

	for _, want := range []string{`"request_id":"req-9"`, `"found":true`, `"plan_cost":3`, `"plan found"`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("output missing %s: %s", want, buf.String())
		}
	}
}

func TestLogEventSend(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	NewEvent(logger.Info()).Add(Component("catalog")).Send()

	if !bytes.Contains(buf.Bytes(), []byte(`"component":"catalog"`)) {
		t.Errorf("expected component field in output: %s", buf.String())
	}
}

func TestGet(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
}

func TestSetLevel(t *testing.T) {
	SetLevel("debug")
	SetLevel("info")
}
