package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer", "description": "exclusive"},
			"y2": map[string]interface{}{"type": "integer", "description": "exclusive"},
		},
		"required":    []string{"x1", "y1", "x2", "y2"},
		"description": description,
	}
}

// detectionProperties are shared by every screens_* tool. Threshold keys
// left out keep their configured values.
func detectionProperties() map[string]interface{} {
	number := func(description string) map[string]interface{} {
		return map[string]interface{}{"type": "number", "description": description}
	}
	integer := func(description string) map[string]interface{} {
		return map[string]interface{}{"type": "integer", "description": description}
	}

	return map[string]interface{}{
		"thresholds": map[string]interface{}{
			"type":        "object",
			"description": "Optional overrides for the classification thresholds",
			"properties": map[string]interface{}{
				"min_width_frac":  number("Minimum box width as a fraction of image width (default 0.15)"),
				"max_width_frac":  number("Maximum box width as a fraction of image width (default 0.40)"),
				"min_height_frac": number("Minimum box height as a fraction of image height (default 0.15)"),
				"max_height_frac": number("Maximum box height as a fraction of image height (default 0.6)"),
				"min_aspect":      number("Minimum width/height (default 0.8)"),
				"max_aspect":      number("Maximum width/height (default 2.5)"),
				"min_blackness":   number("Minimum blackness, 0-100 (default 50)"),
				"min_width_px":    integer("Contours narrower than this are ignored (default 300)"),
				"min_height_px":   integer("Contours shorter than this are ignored (default 200)"),
				"max_overlap":     number("Largest tolerated overlap with a selected screen, 0-1 (default 0.3)"),
				"max_screens":     integer("Maximum number of screens (default 3)"),
			},
		},
		"blackness_method": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"luminance", "rgb_sum", "hsv_value", "euclidean"},
			"description": "Blackness metric used for classification. Default luminance",
		},
	}
}

func withPath(props map[string]interface{}) map[string]interface{} {
	props["path"] = pathProperty()
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Image Analysis
		{
			Name:        "image_edge_detect",
			Description: "Run the edge detector used for screen detection and return the edge map as base64 PNG (white edges on black).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Low hysteresis threshold 0-255. Default from configuration (40)",
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "High hysteresis threshold 0-255. Default from configuration (120)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_blackness",
			Description: "Measure how dark a region is with every blackness metric and report whether it looks like a powered-off display.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty("Optional region to analyze. If omitted, analyzes the entire image."),
					"sensitivity": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"strict", "medium", "lenient"},
						"description": "Screen-off sensitivity. Default medium",
						"default":     "medium",
					},
				},
				"required": []string{"path"},
			},
		},

		// Screen Detection
		{
			Name:        "screens_detect",
			Description: "Detect the monitors in a photograph and return their bounding boxes ordered left to right, numbered from 1.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(detectionProperties()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "screens_candidates",
			Description: "Run screen detection and return the full report: every candidate region with its metrics and check results, the vertical reference line, overlap discards and the final screens.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(detectionProperties()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "screens_detect_batch",
			Description: "Detect screens in several photographs in parallel. A failure on one image is reported in its entry and does not stop the others. Images the batch decoded are not kept in the cache; images cached before the call stay cached.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": func() map[string]interface{} {
					props := detectionProperties()
					props["paths"] = map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the image files",
					}
					props["workers"] = map[string]interface{}{
						"type":        "integer",
						"description": "Images processed at once. Default from configuration (one per CPU)",
					}
					return props
				}(),
				"required": []string{"paths"},
			},
		},
		{
			Name:        "screens_crop",
			Description: "Detect screens and return the N-th one (1 = leftmost) cropped as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": func() map[string]interface{} {
					props := withPath(detectionProperties())
					props["screen"] = map[string]interface{}{
						"type":        "integer",
						"description": "1-based screen index counting from the left",
					}
					props["scale"] = map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					}
					return props
				}(),
				"required": []string{"path", "screen"},
			},
		},
		{
			Name:        "screens_overlay",
			Description: "Draw detection results over the photograph: accepted candidates green, rejected grey, final screens cyan with their index. Returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": func() map[string]interface{} {
					props := withPath(detectionProperties())
					props["show_rejected"] = map[string]interface{}{
						"type":        "boolean",
						"description": "Also draw rejected candidates. Default true",
						"default":     true,
					}
					return props
				}(),
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
