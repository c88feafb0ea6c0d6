package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/ironsheep/inventory-scan-mcp/internal/catalog"
	"github.com/ironsheep/inventory-scan-mcp/internal/scene"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "scan_inventory").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "scan_inventory":
		return s.handleScanInventory(args)
	case "analyze_scene":
		return s.handleAnalyzeScene(args)
	case "preprocess_image":
		return s.handlePreprocessImage(args)
	case "detect_count":
		return s.handleDetectCount(args)
	case "check_count_overlay":
		return s.handleCheckCountOverlay(args)
	case "match_icons":
		return s.handleMatchIcons(args)
	case "lookup_entity":
		return s.handleLookupEntity(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Scan Pipeline Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleScanInventory(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.scanner.Scan(img), nil
}

func (s *Server) handleAnalyzeScene(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return scene.Analyze(img), nil
}

// preprocessResult carries the enhanced image plus the analysis and plan
// that produced it.
type preprocessResult struct {
	Scene       scene.SceneAnalysis    `json:"scene"`
	Config      scene.PreprocessConfig `json:"config"`
	Width       int                    `json:"width"`
	Height      int                    `json:"height"`
	ImageBase64 string                 `json:"image_base64"`
	MimeType    string                 `json:"mime_type"`
}

func (s *Server) handlePreprocessImage(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	analysis := scene.Analyze(img)
	cfg := scene.PlanPreprocess(analysis)
	enhanced := scene.Apply(img, cfg)

	var buf bytes.Buffer
	if err := png.Encode(&buf, enhanced); err != nil {
		return nil, fmt.Errorf("failed to encode enhanced image: %w", err)
	}

	return &preprocessResult{
		Scene:       analysis,
		Config:      cfg,
		Width:       enhanced.Rect.Dx(),
		Height:      enhanced.Rect.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// === Per-Cell Handlers ===

type cellArgs struct {
	Path       string `json:"path"`
	CellX      int    `json:"cell_x"`
	CellY      int    `json:"cell_y"`
	CellWidth  int    `json:"cell_width"`
	CellHeight int    `json:"cell_height"`
}

func (a cellArgs) rect() image.Rectangle {
	return image.Rect(a.CellX, a.CellY, a.CellX+a.CellWidth, a.CellY+a.CellHeight)
}

func (s *Server) handleDetectCount(args json.RawMessage) (interface{}, error) {
	var a cellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.scanner.Detector().Detect(img, a.rect(), img.Bounds().Dy()), nil
}

func (s *Server) handleCheckCountOverlay(args json.RawMessage) (interface{}, error) {
	var a cellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"has_overlay": s.scanner.Detector().HasOverlay(img, a.rect(), img.Bounds().Dy()),
	}, nil
}

func (s *Server) handleMatchIcons(args json.RawMessage) (interface{}, error) {
	var a cellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	if match, ok := s.scanner.Matcher().MatchCell(img, a.rect()); ok {
		return map[string]interface{}{"matched": true, "result": match}, nil
	}
	return map[string]interface{}{"matched": false}, nil
}

// === Catalog Handlers ===

type lookupEntityArgs struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleLookupEntity(args json.RawMessage) (interface{}, error) {
	var a lookupEntityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cat := s.scanner.Catalog()
	switch {
	case a.ID != "":
		if a.Kind != "" {
			if e, ok := cat.Lookup(catalog.Kind(a.Kind), a.ID); ok {
				return e, nil
			}
			return nil, fmt.Errorf("no %s with id %q", a.Kind, a.ID)
		}
		if e, ok := cat.ByID(a.ID); ok {
			return e, nil
		}
		return nil, fmt.Errorf("no entity with id %q", a.ID)
	case a.Name != "":
		if e, ok := cat.ByName(a.Name); ok {
			return e, nil
		}
		return nil, fmt.Errorf("no entity named %q", a.Name)
	default:
		return nil, fmt.Errorf("lookup_entity requires id or name")
	}
}
