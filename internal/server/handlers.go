package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/exposure-tools-mcp/internal/exposure"
	"github.com/ironsheep/exposure-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "exposure_solve_shutter").
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
// Malformed or invalid arguments return -32602; other tool failures return
// -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", zap.String("tool", params.Name), zap.Error(err))
		if errors.Is(err, exposure.ErrInvalidFormat) || errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Solver
	case "exposure_solve_shutter":
		return s.handleSolve(exposure.Shutter, args)
	case "exposure_solve_aperture":
		return s.handleSolve(exposure.Aperture, args)
	case "exposure_solve_iso":
		return s.handleSolve(exposure.ISO, args)
	case "exposure_solve_batch":
		return s.handleSolveBatch(ctx, args)

	// Scales and EV
	case "exposure_scale":
		return s.handleScale(args)
	case "exposure_value":
		return s.handleValue(args)

	// Preview
	case "exposure_preview":
		return s.handlePreview(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

var errInvalidArgs = errors.New("invalid arguments")

// decodeArgs unmarshals tool arguments. Empty arguments decode to the zero
// value.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

// granularityArg resolves an optional granularity argument against the server
// default.
func (s *Server) granularityArg(raw string) (exposure.Granularity, error) {
	if strings.TrimSpace(raw) == "" {
		return s.granularity, nil
	}
	return exposure.ParseGranularity(raw)
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Solver Handlers ===

type solveArgs struct {
	Reference      exposure.Setting `json:"reference"`
	ShutterSpeed   string           `json:"shutter_speed"`
	Aperture       string           `json:"aperture"`
	ISO            string           `json:"iso"`
	Granularity    string           `json:"granularity"`
	EVCompensation float64          `json:"ev_compensation"`
}

func (a solveArgs) target() exposure.Setting {
	return exposure.Setting{ShutterSpeed: a.ShutterSpeed, Aperture: a.Aperture, ISO: a.ISO}
}

func (s *Server) handleSolve(axis exposure.Axis, args json.RawMessage) (interface{}, error) {
	var a solveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.solve(axis, a)
}

func (s *Server) solve(axis exposure.Axis, a solveArgs) (*exposure.Report, error) {
	g, err := s.granularityArg(a.Granularity)
	if err != nil {
		return nil, err
	}

	report, err := s.solver.Solve(exposure.Request{
		Reference:    a.Reference,
		Target:       a.target(),
		Solve:        axis,
		Granularity:  g,
		Compensation: a.EVCompensation,
	})
	if err != nil {
		return nil, err
	}

	if len(report.Diagnostics) > 0 {
		s.logger.Debug("solve diagnostics",
			zap.Stringer("axis", axis),
			zap.String("value", report.Value),
			zap.Stringer("diagnostics", report.Diagnostics))
	}
	return report, nil
}

type batchItemArgs struct {
	Solve string `json:"solve"`
	solveArgs
}

type batchArgs struct {
	Requests []batchItemArgs `json:"requests"`
}

// BatchItem is one entry of an exposure_solve_batch result, in request order.
type BatchItem struct {
	Index  int              `json:"index"`
	Report *exposure.Report `json:"report,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func (s *Server) handleSolveBatch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a batchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Requests) == 0 {
		return nil, fmt.Errorf("%w: requests must not be empty", errInvalidArgs)
	}
	if s.batchMaxItems > 0 && len(a.Requests) > s.batchMaxItems {
		return nil, fmt.Errorf("%w: %d requests exceeds the batch limit of %d",
			errInvalidArgs, len(a.Requests), s.batchMaxItems)
	}

	items := make([]BatchItem, len(a.Requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)

	for i, req := range a.Requests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = BatchItem{Index: i}
			axis, err := exposure.ParseAxis(req.Solve)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			report, err := s.solve(axis, req.solveArgs)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Report = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	failed := 0
	for _, it := range items {
		if it.Error != "" {
			failed++
		}
	}
	return map[string]interface{}{
		"count":   len(items),
		"failed":  failed,
		"results": items,
	}, nil
}

// === Scale and EV Handlers ===

type scaleArgs struct {
	Axis        string `json:"axis"`
	Granularity string `json:"granularity"`
}

func (s *Server) handleScale(args json.RawMessage) (interface{}, error) {
	var a scaleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	axis, err := exposure.ParseAxis(a.Axis)
	if err != nil {
		return nil, err
	}
	g, err := s.granularityArg(a.Granularity)
	if err != nil {
		return nil, err
	}

	scale := s.solver.Scales().Scale(axis, g)
	return map[string]interface{}{
		"axis":          axis,
		"granularity":   g,
		"entries":       s.solver.Scale(axis, g),
		"min":           scale.MinEntry(),
		"max":           scale.MaxEntry(),
		"entry_count":   scale.Len(),
		"step_stops":    g.StepStops(),
		"max_gap_stops": scale.MaxGapStops(),
		"tolerance":     s.solver.Tolerance(axis),
	}, nil
}

type valueArgs struct {
	exposure.Setting
	Granularity string `json:"granularity"`
}

func (s *Server) handleValue(args json.RawMessage) (interface{}, error) {
	var a valueArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.granularityArg(a.Granularity)
	if err != nil {
		return nil, err
	}

	ev, err := exposure.ExposureValue(a.Setting)
	if err != nil {
		return nil, err
	}
	envelope, err := s.solver.Envelope(g)
	if err != nil {
		return nil, err
	}

	diagnostics := exposure.Diagnostics{}
	if d := envelope.Check(ev); d != nil {
		diagnostics = append(diagnostics, *d)
	}
	return map[string]interface{}{
		"setting":     a.Setting,
		"ev":          roundEV(ev),
		"envelope":    envelope,
		"within":      envelope.Contains(ev),
		"diagnostics": diagnostics,
	}, nil
}

func roundEV(ev float64) float64 {
	return math.Round(ev*100) / 100
}

// === Preview Handler ===

type previewArgs struct {
	Path     string            `json:"path"`
	From     *exposure.Setting `json:"from"`
	To       *exposure.Setting `json:"to"`
	Stops    *float64          `json:"stops"`
	MaxWidth int               `json:"max_width"`
	Region   *imaging.Region   `json:"region"`
	NoCache  bool              `json:"no_cache"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArgs)
	}

	var stops float64
	switch {
	case a.Stops != nil && (a.From != nil || a.To != nil):
		return nil, fmt.Errorf("%w: give either stops or from/to, not both", errInvalidArgs)
	case a.Stops != nil:
		stops = *a.Stops
	case a.From != nil && a.To != nil:
		d, err := exposure.StopsBetween(*a.From, *a.To)
		if err != nil {
			return nil, err
		}
		stops = d
	default:
		return nil, fmt.Errorf("%w: stops or both from and to are required", errInvalidArgs)
	}

	maxWidth := s.previewMaxWidth
	if a.MaxWidth > 0 && (maxWidth == 0 || a.MaxWidth < maxWidth) {
		maxWidth = a.MaxWidth
	}

	if a.NoCache {
		// Re-read the file and do not keep it.
		s.cache.Evict(a.Path)
		defer s.cache.Evict(a.Path)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(img, imaging.PreviewOptions{
		Stops:    stops,
		MaxWidth: maxWidth,
		Region:   a.Region,
	})
}
