package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func settingSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"shutter_speed": map[string]interface{}{
				"type":        "string",
				"description": "Shutter speed, e.g. 1/125, 2\" or 0.5",
			},
			"aperture": map[string]interface{}{
				"type":        "string",
				"description": `Aperture: "f/8" or "8"`,
			},
			"iso": map[string]interface{}{
				"type":        "string",
				"description": `ISO sensitivity: "400"`,
			},
		},
		"required": []string{"shutter_speed", "aperture", "iso"},
	}
}

var granularityProperty = map[string]interface{}{
	"type":        "string",
	"description": "Scale granularity. Defaults to the server's configured granularity.",
	"enum":        []string{"full", "half", "third"},
}

var evCompensationProperty = map[string]interface{}{
	"type":        "number",
	"description": "EV compensation in stops. Positive brightens the result.",
	"default":     0,
}

// solveSchema builds the input schema of a solve tool. The solved axis is
// omitted from the target properties.
func solveSchema(known ...string) map[string]interface{} {
	props := map[string]interface{}{
		"reference":       settingSchema("A correctly metered reference exposure"),
		"granularity":     granularityProperty,
		"ev_compensation": evCompensationProperty,
	}
	descriptions := map[string]string{
		"shutter_speed": "Target shutter speed",
		"aperture":      "Target aperture",
		"iso":           "Target ISO",
	}
	required := []string{"reference"}
	for _, k := range known {
		props[k] = map[string]interface{}{
			"type":        "string",
			"description": descriptions[k],
		}
		required = append(required, k)
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Solver
		{
			Name:        "exposure_solve_shutter",
			Description: "Compute the shutter speed that matches a reference exposure at a new aperture and ISO. The result is snapped to the nearest camera setting and carries diagnostics when it falls outside the camera's range.",
			InputSchema: solveSchema("aperture", "iso"),
		},
		{
			Name:        "exposure_solve_aperture",
			Description: "Compute the aperture that matches a reference exposure at a new shutter speed and ISO.",
			InputSchema: solveSchema("shutter_speed", "iso"),
		},
		{
			Name:        "exposure_solve_iso",
			Description: "Compute the ISO that matches a reference exposure at a new shutter speed and aperture.",
			InputSchema: solveSchema("shutter_speed", "aperture"),
		},
		{
			Name:        "exposure_solve_batch",
			Description: "Run several solves at once. Each request names the axis to solve; failures are reported per request without failing the batch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"requests": map[string]interface{}{
						"type":        "array",
						"description": "Solve requests with the same fields as the single solve tools plus 'solve'",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"solve": map[string]interface{}{
									"type": "string",
									"enum": []string{"shutter", "aperture", "iso"},
								},
								"reference":       settingSchema("A correctly metered reference exposure"),
								"shutter_speed":   map[string]interface{}{"type": "string"},
								"aperture":        map[string]interface{}{"type": "string"},
								"iso":             map[string]interface{}{"type": "string"},
								"granularity":     granularityProperty,
								"ev_compensation": evCompensationProperty,
							},
							"required": []string{"solve", "reference"},
						},
					},
				},
				"required": []string{"requests"},
			},
		},

		// Scales and EV
		{
			Name:        "exposure_scale",
			Description: "List the settings a camera offers on one axis at a granularity, in scale order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"axis": map[string]interface{}{
						"type":        "string",
						"description": "Which setting to list",
						"enum":        []string{"shutter", "aperture", "iso"},
					},
					"granularity": granularityProperty,
				},
				"required": []string{"axis"},
			},
		},
		{
			Name:        "exposure_value",
			Description: "Compute the ISO-adjusted exposure value (EV) of a setting and compare it against the range the camera scales can reach.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"shutter_speed": map[string]interface{}{"type": "string", "description": "Shutter speed"},
					"aperture":      map[string]interface{}{"type": "string", "description": "Aperture"},
					"iso":           map[string]interface{}{"type": "string", "description": "ISO"},
					"granularity":   granularityProperty,
				},
				"required": []string{"shutter_speed", "aperture", "iso"},
			},
		},

		// Preview
		{
			Name:        "exposure_preview",
			Description: "Render an image as it would look exposed brighter or darker, either by an explicit number of stops or by the difference between two settings. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"from": settingSchema("The setting the image was taken with"),
					"to":   settingSchema("The setting to preview"),
					"stops": map[string]interface{}{
						"type":        "number",
						"description": "Stops of light to add (negative removes). Use instead of from/to.",
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Downsize wider images to this width",
					},
					"no_cache": map[string]interface{}{
						"type":        "boolean",
						"description": "Read the file fresh and do not keep it cached",
						"default":     false,
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional crop region",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
