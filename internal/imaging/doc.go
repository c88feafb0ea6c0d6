// Package imaging handles screenshot and icon-template loading for the
// scanner.
//
// The package wraps image decoding (PNG, JPEG, WebP) behind a
// concurrency-safe cache so that the MCP server, the scan orchestrator
// and the icon matcher can share decoded images without re-reading the
// disk. WebP decoding first goes through the registered x/image decoder
// and falls back to the chai2010 decoder for lossless/extended files.
//
// All analysis code in this repository operates on the standard
// image.Image types returned here; nothing in this package inspects
// pixels itself.
package imaging
