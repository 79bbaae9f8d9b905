// Package server implements the MCP (Model Context Protocol) server for the
// exposure tools.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0, one request per line:
//   - Input: requests on stdin (or any io.Reader passed to Serve)
//   - Output: responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Solver:
//   - exposure_solve_shutter: Shutter speed for a new aperture and ISO
//   - exposure_solve_aperture: Aperture for a new shutter speed and ISO
//   - exposure_solve_iso: ISO for a new shutter speed and aperture
//   - exposure_solve_batch: Many solves at once
//
// Scales and EV:
//   - exposure_scale: List a camera scale
//   - exposure_value: EV of a setting against the scale envelope
//
// Preview:
//   - exposure_preview: Re-expose an image by a number of stops
//
// # Error Handling
//
// Bad arguments, including unparseable notation, return code -32602. Other
// tool failures return -32000. Out-of-range results are not errors: they come
// back with diagnostics in the report.
//
// # Usage
//
//	srv := server.New(cfg, solver, logger)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
