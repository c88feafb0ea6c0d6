package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// cellProperties is the shared schema fragment for tools that address a
// single inventory cell.
func cellProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the screenshot file",
		},
		"cell_x": map[string]interface{}{
			"type":        "integer",
			"description": "Left edge of the cell in pixels",
		},
		"cell_y": map[string]interface{}{
			"type":        "integer",
			"description": "Top edge of the cell in pixels",
		},
		"cell_width": map[string]interface{}{
			"type":        "integer",
			"description": "Cell width in pixels",
		},
		"cell_height": map[string]interface{}{
			"type":        "integer",
			"description": "Cell height in pixels",
		},
	}
}

var cellRequired = []string{"path", "cell_x", "cell_y", "cell_width", "cell_height"}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "scan_inventory",
			Description: "Run the full inventory scan pipeline on a screenshot: scene analysis, adaptive preprocessing, per-cell icon and stack-count recognition, OCR fusion and aggregation. Returns the recognized entities with counts and confidences.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "analyze_scene",
			Description: "Compute a screenshot's lighting statistics: brightness, contrast, saturation, noise level, heavy-effects flag and environment hint.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "preprocess_image",
			Description: "Apply adaptive preprocessing to a screenshot and return the enhanced image as base64-encoded PNG along with the scene analysis and the enhancement plan that was applied.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "detect_count",
			Description: "Recognize the stack-count overlay of one inventory cell. Returns the count, detection method, raw text and digit-match confidence.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cellProperties(),
				"required":   cellRequired,
			},
		},
		{
			Name:        "check_count_overlay",
			Description: "Cheap pre-filter: report whether an inventory cell's count region contains enough near-white pixels to plausibly carry a stack-count overlay.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cellProperties(),
				"required":   cellRequired,
			},
		},
		{
			Name:        "match_icons",
			Description: "Score one inventory cell against the catalog's icon templates and return the best match, if any reaches the similarity threshold.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cellProperties(),
				"required":   cellRequired,
			},
		},
		{
			Name:        "lookup_entity",
			Description: "Look up a catalog entity by kind and id, or by display name (case and punctuation insensitive).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"item", "weapon", "tome", "character"},
						"description": "Entity kind (required when looking up by id)",
					},
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Stable entity id",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Display name, used when id is not given",
					},
				},
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
