// Package viz draws the entity on a terminal screen.
//
// The world is rasterized onto a Braille [Canvas], which gives every terminal
// cell a 2x4 grid of sub-pixels, and the canvas is then copied to a tcell
// screen:
//
//   - [Renderer]: implements sim.FrameRenderer
//   - [Canvas]: Braille-based pixel canvas
//   - [Theme]: color scheme, see [ThemeNames]
//
// # Layout
//
// The bottom row is reserved for a status line with the facing direction,
// velocity and the FPS readout. Everything above it shows the world scaled
// to fit.
package viz
