package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/screen-finder-mcp/internal/imaging"
	"github.com/ironsheep/screen-finder-mcp/internal/screens"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "screens_detect", "image_load").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// noScreensMessage is reported when detection finds nothing. An empty result
// is not an error.
const noScreensMessage = "no screens detected"

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults for omitted parameters
//  3. Loads images from cache
//  4. Calls the imaging or screens package
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Image Analysis
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)
	case "image_blackness":
		return s.handleImageBlackness(args)

	// Screen Detection
	case "screens_detect":
		return s.handleScreensDetect(args)
	case "screens_candidates":
		return s.handleScreensCandidates(args)
	case "screens_detect_batch":
		return s.handleScreensDetectBatch(args)
	case "screens_crop":
		return s.handleScreensCrop(args)
	case "screens_overlay":
		return s.handleScreensOverlay(args)

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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Image Analysis Handlers ===

type imageEdgeDetectArgs struct {
	Path          string `json:"path"`
	ThresholdLow  *int   `json:"threshold_low"`
	ThresholdHigh *int   `json:"threshold_high"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	edge := s.config().Edge
	low, high := edge.ThresholdLow, edge.ThresholdHigh
	if a.ThresholdLow != nil {
		low = *a.ThresholdLow
	}
	if a.ThresholdHigh != nil {
		high = *a.ThresholdHigh
	}
	if low < 0 || high > 255 {
		return nil, fmt.Errorf("thresholds must lie in 0-255, got %d and %d", low, high)
	}
	if low > high {
		return nil, fmt.Errorf("threshold_low %d exceeds threshold_high %d", low, high)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(img, low, high)
}

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r regionArgs) rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

type imageBlacknessArgs struct {
	Path        string      `json:"path"`
	Region      *regionArgs `json:"region,omitempty"`
	Sensitivity string      `json:"sensitivity"`
}

type blacknessResult struct {
	*imaging.BlacknessAnalysis
	Region      regionArgs `json:"region"`
	Sensitivity string     `json:"sensitivity"`
}

func (s *Server) handleImageBlackness(args json.RawMessage) (interface{}, error) {
	var a imageBlacknessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	sensitivity := imaging.SensitivityMedium
	switch imaging.Sensitivity(a.Sensitivity) {
	case "":
	case imaging.SensitivityStrict, imaging.SensitivityMedium, imaging.SensitivityLenient:
		sensitivity = imaging.Sensitivity(a.Sensitivity)
	default:
		return nil, fmt.Errorf("invalid sensitivity %q: expected strict, medium or lenient", a.Sensitivity)
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	r := img.Bounds()
	if a.Region != nil {
		r = a.Region.rect().Intersect(img.Bounds())
		if r.Empty() {
			return nil, fmt.Errorf("region %v does not intersect image bounds %v", a.Region.rect(), img.Bounds())
		}
	}

	analysis := imaging.AnalyzeBlackness(img, r)
	analysis.ScreenOff = imaging.IsScreenOff(img, r, sensitivity)

	return &blacknessResult{
		BlacknessAnalysis: analysis,
		Region:            regionArgs{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
		Sensitivity:       string(sensitivity),
	}, nil
}

// === Screen Detection Handlers ===

// detectionArgs carries the per-call overrides shared by the screens_* tools.
type detectionArgs struct {
	Thresholds      json.RawMessage `json:"thresholds,omitempty"`
	BlacknessMethod string          `json:"blackness_method,omitempty"`
}

// detector builds a Detector from the server configuration with the call's
// overrides applied. Threshold keys absent from the override keep their
// configured values.
func (s *Server) detector(a detectionArgs) (*screens.Detector, error) {
	cfg := *s.config()
	if len(a.Thresholds) > 0 {
		if err := json.Unmarshal(a.Thresholds, &cfg.Thresholds); err != nil {
			return nil, fmt.Errorf("invalid thresholds: %w", err)
		}
	}
	if a.BlacknessMethod != "" {
		cfg.Blackness.Method = a.BlacknessMethod
	}
	return cfg.NewDetector(s.logger)
}

func (s *Server) detect(path string, a detectionArgs) (image.Image, *screens.Report, error) {
	d, err := s.detector(a)
	if err != nil {
		return nil, nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, err
	}
	report, err := d.Detect(context.Background(), img)
	if err != nil {
		return nil, nil, err
	}
	return img, report, nil
}

type screensDetectArgs struct {
	Path string `json:"path"`
	detectionArgs
}

type screensDetectResult struct {
	Path    string           `json:"path"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Screens []screens.Screen `json:"screens"`
	Count   int              `json:"count"`
	Message string           `json:"message,omitempty"`
}

func newDetectResult(path string, r *screens.Report) *screensDetectResult {
	res := &screensDetectResult{
		Path:    path,
		Width:   r.Width,
		Height:  r.Height,
		Screens: r.Selection.Screens,
		Count:   r.Selection.Count,
	}
	if res.Count == 0 {
		res.Message = noScreensMessage
	}
	return res
}

func (s *Server) handleScreensDetect(args json.RawMessage) (interface{}, error) {
	var a screensDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, report, err := s.detect(a.Path, a.detectionArgs)
	if err != nil {
		return nil, err
	}
	return newDetectResult(a.Path, report), nil
}

func (s *Server) handleScreensCandidates(args json.RawMessage) (interface{}, error) {
	var a screensDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, report, err := s.detect(a.Path, a.detectionArgs)
	if err != nil {
		return nil, err
	}
	return report, nil
}

type screensDetectBatchArgs struct {
	Paths   []string `json:"paths"`
	Workers int      `json:"workers"`
	detectionArgs
}

type batchEntry struct {
	Path    string           `json:"path"`
	Width   int              `json:"width,omitempty"`
	Height  int              `json:"height,omitempty"`
	Screens []screens.Screen `json:"screens,omitempty"`
	Count   int              `json:"count"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type screensDetectBatchResult struct {
	Results   []batchEntry `json:"results"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

func (s *Server) handleScreensDetectBatch(args json.RawMessage) (interface{}, error) {
	var a screensDetectBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must list at least one image")
	}
	if a.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", a.Workers)
	}
	if a.Workers == 0 {
		a.Workers = s.config().Batch.Workers
	}

	d, err := s.detector(a.detectionArgs)
	if err != nil {
		return nil, err
	}
	var transient []string
	for _, path := range a.Paths {
		if !s.cache.Contains(path) {
			transient = append(transient, path)
		}
	}
	results, err := screens.DetectBatch(context.Background(), d, s.cache, a.Paths, a.Workers)
	for _, path := range transient {
		s.cache.Evict(path)
	}
	if err != nil {
		return nil, err
	}

	out := &screensDetectBatchResult{Results: make([]batchEntry, len(results))}
	for i, r := range results {
		entry := batchEntry{Path: r.Path}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			out.Failed++
		} else {
			res := newDetectResult(r.Path, r.Report)
			entry.Width, entry.Height = res.Width, res.Height
			entry.Screens, entry.Count, entry.Message = res.Screens, res.Count, res.Message
			out.Succeeded++
		}
		out.Results[i] = entry
	}
	return out, nil
}

type screensCropArgs struct {
	Path   string  `json:"path"`
	Screen int     `json:"screen"`
	Scale  float64 `json:"scale"`
	detectionArgs
}

type screensCropResult struct {
	*imaging.EncodedImage
	Screen screens.Screen `json:"screen"`
}

func (s *Server) handleScreensCrop(args json.RawMessage) (interface{}, error) {
	var a screensCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Screen < 1 {
		return nil, fmt.Errorf("screen index must be 1 or greater, got %d", a.Screen)
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	img, report, err := s.detect(a.Path, a.detectionArgs)
	if err != nil {
		return nil, err
	}
	sc, ok := report.Selection.Find(a.Screen)
	if !ok {
		return nil, fmt.Errorf("screen %d not found: %d screens detected", a.Screen, report.Selection.Count)
	}

	encoded, err := imaging.Crop(img, sc.BBox.Rect(), a.Scale)
	if err != nil {
		return nil, err
	}
	return &screensCropResult{EncodedImage: encoded, Screen: sc}, nil
}

type screensOverlayArgs struct {
	Path         string `json:"path"`
	ShowRejected *bool  `json:"show_rejected,omitempty"`
	detectionArgs
}

type screensOverlayResult struct {
	*imaging.EncodedImage
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleScreensOverlay(args json.RawMessage) (interface{}, error) {
	var a screensOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	showRejected := a.ShowRejected == nil || *a.ShowRejected

	img, report, err := s.detect(a.Path, a.detectionArgs)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.RenderOverlay(img, overlayBoxes(report, showRejected))
	if err != nil {
		return nil, err
	}
	res := &screensOverlayResult{EncodedImage: encoded, Count: report.Selection.Count}
	if res.Count == 0 {
		res.Message = noScreensMessage
	}
	return res, nil
}

// overlayBoxes lists rejected candidates first so accepted ones and then the
// final screens paint over them.
func overlayBoxes(r *screens.Report, showRejected bool) []imaging.OverlayBox {
	var boxes []imaging.OverlayBox
	if showRejected {
		for _, c := range r.Candidates {
			if !c.IsAccepted() {
				boxes = append(boxes, imaging.OverlayBox{
					Rect:      c.BBox.Rect(),
					Label:     fmt.Sprintf("#%d", c.ID),
					Color:     imaging.ColorRejected,
					Thickness: 1,
				})
			}
		}
	}
	for _, c := range r.Candidates {
		if c.IsAccepted() {
			boxes = append(boxes, imaging.OverlayBox{
				Rect:      c.BBox.Rect(),
				Label:     fmt.Sprintf("#%d", c.ID),
				Color:     imaging.ColorAccepted,
				Thickness: 2,
			})
		}
	}
	for _, sc := range r.Selection.Screens {
		boxes = append(boxes, imaging.OverlayBox{
			Rect:      sc.BBox.Rect(),
			Label:     fmt.Sprintf("Screen %d", sc.Index),
			Color:     imaging.ColorSelected,
			Thickness: 3,
		})
	}
	return boxes
}
