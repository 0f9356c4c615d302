// Package server implements the MCP (Model Context Protocol) server for
// locating monitors in photographs.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Image Analysis:
//   - image_edge_detect: Edge map used by the contour tracer
//   - image_blackness: Darkness metrics for a region
//
// Screen Detection:
//   - screens_detect: Screens ordered left to right
//   - screens_candidates: Every candidate with its metrics and checks
//   - screens_detect_batch: Screens for many images in parallel
//   - screens_crop: One detected screen as PNG
//   - screens_overlay: Debug image of candidates and screens
//
// The screens_* tools accept "thresholds" and "blackness_method" arguments
// that override the configuration for that call only.
//
// # Image Caching
//
// Images are cached by absolute path and reused across tool calls, so
// detecting and then cropping the same photograph decodes it once. The cache
// persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Finding no screens is not an error; the result has count 0 and the
// message "no screens detected".
//
// # Usage
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(server.WithConfig(cfg))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
