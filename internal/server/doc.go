// Package server implements the MCP (Model Context Protocol) server for
// the inventory scanner.
//
// This package provides a JSON-RPC 2.0 server over stdin/stdout that
// exposes the scanning pipeline to MCP-compatible clients. Seven tools
// are available:
//
//   - scan_inventory: the full screenshot-import pipeline
//   - analyze_scene: scene lighting statistics
//   - preprocess_image: adaptive enhancement, returned as base64 PNG
//   - detect_count: stack-count recognition for one cell
//   - check_count_overlay: the cheap overlay pre-filter for one cell
//   - match_icons: icon template matching for one cell
//   - lookup_entity: catalog lookup by kind+id or display name
//
// # Protocol Flow
//
// The server reads newline-delimited JSON-RPC requests from stdin and
// writes responses to stdout; logging goes to stderr so it never
// corrupts the protocol stream. Supported methods are initialize,
// tools/list, tools/call and ping. Tool execution errors surface as
// JSON-RPC error objects, never as process crashes.
//
// # State
//
// The only state is the shared image cache; every tool invocation is
// otherwise independent, and repeated calls with identical inputs return
// identical results.
package server
