package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/glide/internal/kinematics"
)

type ExportData struct {
	Dt      float64  `json:"dt"`
	Steps   int      `json:"steps"`
	Summary Summary  `json:"summary"`
	Samples []Sample `json:"samples"`
}

func (r *Recorder) WriteJSON(w io.Writer, dt float64) error {
	sum, err := r.Summary()
	if err != nil {
		return err
	}
	data := ExportData{
		Dt:      dt,
		Steps:   sum.Steps,
		Summary: sum,
		Samples: r.samples,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (r *Recorder) WriteCSV(w io.Writer) error {
	if len(r.samples) == 0 {
		return ErrEmpty
	}

	cw := csv.NewWriter(w)
	header := []string{"time", "x", "y", "vx", "vy", "facing"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range r.samples {
		row := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.Position.X(), 'f', 6, 64),
			strconv.FormatFloat(s.Position.Y(), 'f', 6, 64),
			strconv.FormatFloat(s.Velocity.X(), 'f', 6, 64),
			strconv.FormatFloat(s.Velocity.Y(), 'f', 6, 64),
			s.Facing.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Plot renders one series against step index.
func (r *Recorder) Plot(series string, width, height int) (string, error) {
	data, err := r.Series(series)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, series)
	}
	if len(data) < 2 {
		return "", ErrEmpty
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(series+" vs step"),
	), nil
}

// ReadCSV loads a trace written by WriteCSV.
func ReadCSV(r io.Reader) (*Recorder, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrEmpty
	}

	rec := &Recorder{samples: make([]Sample, 0, len(records)-1)}
	for i, record := range records[1:] {
		if len(record) != 6 {
			return nil, fmt.Errorf("trace: row %d: expected 6 fields, got %d", i+1, len(record))
		}
		var vals [5]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("trace: row %d: %w", i+1, err)
			}
			vals[j] = v
		}
		var facing kinematics.Direction
		if err := facing.UnmarshalText([]byte(record[5])); err != nil {
			return nil, fmt.Errorf("trace: row %d: %w", i+1, err)
		}
		rec.samples = append(rec.samples, Sample{
			T:        vals[0],
			Position: mgl64.Vec2{vals[1], vals[2]},
			Velocity: mgl64.Vec2{vals[3], vals[4]},
			Facing:   facing,
		})
	}
	return rec, nil
}
