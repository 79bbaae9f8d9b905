package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"exposure_solve_shutter",
		"exposure_solve_aperture",
		"exposure_solve_iso",
		"exposure_solve_batch",
		"exposure_scale",
		"exposure_value",
		"exposure_preview",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties missing or not a map")
			}
			if _, err := json.Marshal(tool); err != nil {
				t.Errorf("tool does not marshal: %v", err)
			}
		})
	}
}

func findTool(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("%s tool not found", name)
	return Tool{}
}

func TestToolDefinitions_SolveRequired(t *testing.T) {
	tests := []struct {
		tool    string
		want    []string
		omitted string
	}{
		{"exposure_solve_shutter", []string{"reference", "aperture", "iso"}, "shutter_speed"},
		{"exposure_solve_aperture", []string{"reference", "shutter_speed", "iso"}, "aperture"},
		{"exposure_solve_iso", []string{"reference", "shutter_speed", "aperture"}, "iso"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool := findTool(t, tt.tool)
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("required should be a string slice")
			}

			got := make(map[string]bool)
			for _, r := range required {
				got[r] = true
			}
			for _, w := range tt.want {
				if !got[w] {
					t.Errorf("%s should require %q", tt.tool, w)
				}
			}

			props := tool.InputSchema["properties"].(map[string]interface{})
			if _, ok := props[tt.omitted]; ok {
				t.Errorf("%s should not accept the solved axis %q", tt.tool, tt.omitted)
			}
			if _, ok := props["ev_compensation"]; !ok {
				t.Errorf("%s should accept ev_compensation", tt.tool)
			}
		})
	}
}

func TestToolDefinitions_GranularityEnum(t *testing.T) {
	tool := findTool(t, "exposure_scale")
	props := tool.InputSchema["properties"].(map[string]interface{})
	g, ok := props["granularity"].(map[string]interface{})
	if !ok {
		t.Fatal("exposure_scale should accept granularity")
	}
	enum, ok := g["enum"].([]string)
	if !ok || len(enum) != 3 {
		t.Errorf("granularity enum: got %v", g["enum"])
	}
}

func TestToolDefinitions_PreviewRequiresPath(t *testing.T) {
	tool := findTool(t, "exposure_preview")
	required, ok := tool.InputSchema["required"].([]string)
	if !ok {
		t.Fatal("required should be a string slice")
	}
	if len(required) != 1 || required[0] != "path" {
		t.Errorf("required: got %v, want [path]", required)
	}
}
