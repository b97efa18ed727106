package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/goap-go/domain/planner"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for planner logging.

// RequestID adds a request ID field.
func RequestID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("request_id", id)
	}
}

// Strategy adds a planning strategy field.
func Strategy(s planner.Strategy) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("strategy", s.String())
	}
}

// GoalSize adds a goal condition count field.
func GoalSize(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("goal_size", n)
	}
}

// ActionCount adds a catalog size field.
func ActionCount(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("action_count", n)
	}
}

// Found adds a plan-found field.
func Found(found bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("found", found)
	}
}

// PlanLength adds a plan step count field.
func PlanLength(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("plan_length", n)
	}
}

// PlanCost adds a plan cost field.
func PlanCost(cost int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("plan_cost", cost)
	}
}

// Expanded adds a nodes-expanded field.
func Expanded(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("nodes_expanded", n)
	}
}

// Generated adds a nodes-generated field.
func Generated(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("nodes_generated", n)
	}
}

// Reopened adds a nodes-reopened field.
func Reopened(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("nodes_reopened", n)
	}
}

// FrontierPeak adds a frontier peak size field.
func FrontierPeak(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("frontier_peak", n)
	}
}

// BudgetExhausted adds a budget-exhausted field.
func BudgetExhausted(exhausted bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("budget_exhausted", exhausted)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Cached adds a cached field.
func Cached(cached bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("cached", cached)
	}
}

// CacheKey adds a cache key field.
func CacheKey(key string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("cache_key", key)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Path adds a file path field.
func Path(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", path)
	}
}

// Scenario adds a scenario name field.
func Scenario(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("scenario", name)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
