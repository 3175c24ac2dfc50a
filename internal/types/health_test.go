package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHealthState_IsValid(t *testing.T) {
	tests := []struct {
		state HealthState
		want  bool
	}{
		{HealthStateHealthy, true},
		{HealthStateDegraded, true},
		{HealthStateUnhealthy, true},
		{HealthState("invalid"), false},
		{HealthState(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("HealthState.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHealthState_UnmarshalJSON(t *testing.T) {
	var s HealthState
	if err := json.Unmarshal([]byte(`"degraded"`), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s != HealthStateDegraded {
		t.Errorf("Unmarshal() = %v, want degraded", s)
	}

	if err := json.Unmarshal([]byte(`"sideways"`), &s); err == nil {
		t.Error("Unmarshal() of an unknown state should fail")
	}
}

func TestHealthStatus_Predicates(t *testing.T) {
	if !Healthy("ok").IsHealthy() {
		t.Error("Healthy().IsHealthy() = false")
	}
	if !Degraded("slow").IsDegraded() {
		t.Error("Degraded().IsDegraded() = false")
	}
	if !Unhealthy("down").IsUnhealthy() {
		t.Error("Unhealthy().IsUnhealthy() = false")
	}
	if Healthy("ok").CheckedAt.IsZero() {
		t.Error("CheckedAt not set")
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		components map[string]HealthStatus
		want       HealthState
		contains   string
	}{
		{"empty", nil, HealthStateUnhealthy, "no components"},
		{"all healthy", map[string]HealthStatus{"neo4j": Healthy(""), "llm": Healthy("")}, HealthStateHealthy, "all 2"},
		{"one failing", map[string]HealthStatus{"neo4j": Unhealthy("x"), "llm": Healthy("")}, HealthStateDegraded, "neo4j"},
		{"all failing", map[string]HealthStatus{"neo4j": Unhealthy("x"), "llm": Degraded("")}, HealthStateUnhealthy, "llm, neo4j"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.components)
			if got.State != tt.want {
				t.Errorf("Aggregate().State = %v, want %v", got.State, tt.want)
			}
			if !strings.Contains(got.Message, tt.contains) {
				t.Errorf("Aggregate().Message = %q, want to contain %q", got.Message, tt.contains)
			}
		})
	}
}
