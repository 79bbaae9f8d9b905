// Package imaging renders exposure previews for the MCP server.
//
// A preview re-exposes a sample photograph by a number of stops so a user can
// see what an EV compensation, or a switch between two exposure settings,
// does to brightness. The shift is applied in linear light: every pixel is
// converted from sRGB, multiplied by 2^stops and converted back, with values
// above white clipped. Nothing in this package measures or meters an image.
//
// # Coordinate System
//
// Preview regions use 0-based pixel coordinates with (0,0) at the top-left.
// (X1,Y1) is inclusive and (X2,Y2) is exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Preview is stateless and never
// modifies its input image.
package imaging
