package demo

import "testing"

func TestParseScenario(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Scenario
		wantErr bool
	}{
		{name: "success", in: "success", want: ScenarioSuccess},
		{name: "fail", in: "fail", want: ScenarioFail},
		{name: "malformed", in: "malformed", want: ScenarioMalformed},
		{name: "trim and lowercase", in: "  FAIL  ", want: ScenarioFail},
		{name: "invalid", in: "flaky", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScenario(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScenario() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseScenario() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if got, err := ParsePreset(" Quick "); err != nil || got != PresetQuick {
		t.Fatalf("ParsePreset() = %q, %v", got, err)
	}
	if _, err := ParsePreset("turbo"); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}

func TestNewConfig_PresetsGetSlower(t *testing.T) {
	quick, err := NewConfig(PresetQuick, ScenarioSuccess)
	if err != nil {
		t.Fatalf("NewConfig(quick): %v", err)
	}
	slow, err := NewConfig(PresetSlow, ScenarioFail)
	if err != nil {
		t.Fatalf("NewConfig(slow): %v", err)
	}
	if quick.UploadDelay+quick.AnalyzeDelay >= slow.UploadDelay+slow.AnalyzeDelay {
		t.Fatalf("expected slow preset to take longer than quick")
	}
	if slow.Scenario != ScenarioFail {
		t.Fatalf("scenario = %q, want fail", slow.Scenario)
	}
	if _, err := NewConfig("turbo", ScenarioSuccess); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}
