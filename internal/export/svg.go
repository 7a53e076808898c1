// Package export renders recorded runs as standalone SVG images.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/glide/internal/trace"
	"github.com/san-kum/glide/internal/viz"
)

type Options struct {
	WorldW, WorldH float64
	// Scale multiplies world pixels into SVG user units.
	Scale  float64
	Stroke string
}

func DefaultOptions() Options {
	return Options{WorldW: 800, WorldH: 600, Scale: 1, Stroke: "#00ccff"}
}

// PathSVG draws the world bounds, the reference marker, the path the entity
// took and where it ended up.
func PathSVG(samples []trace.Sample, opts Options) (string, error) {
	if len(samples) == 0 {
		return "", trace.ErrEmpty
	}

	width := opts.WorldW * opts.Scale
	height := opts.WorldH * opts.Scale
	marker := viz.MarkerSize * opts.Scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#444466"/>
`, viz.ReferenceX*opts.Scale, viz.ReferenceY*opts.Scale, marker, marker))

	// path through marker centers
	half := viz.MarkerSize / 2
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, opts.Stroke))
	for i, s := range samples {
		x := (s.Position.X() + half) * opts.Scale
		y := (s.Position.Y() + half) * opts.Scale
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
`)

	last := samples[len(samples)-1]
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#ffffff"/>
`, last.Position.X()*opts.Scale, last.Position.Y()*opts.Scale, marker, marker))

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

func WritePathSVG(w io.Writer, samples []trace.Sample, opts Options) error {
	svg, err := PathSVG(samples, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg)
	return err
}
