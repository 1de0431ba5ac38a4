package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/ballpit/internal/particle"
)

// CSVTrace writes one row per particle per frame.
type CSVTrace struct {
	w   *csv.Writer
	err error
}

func NewCSVTrace(out io.Writer) *CSVTrace {
	t := &CSVTrace{w: csv.NewWriter(out)}
	t.err = t.w.Write([]string{"frame", "index", "x", "y", "vx", "vy"})
	return t
}

func (t *CSVTrace) OnFrame(frame int, ps []particle.Particle) {
	if t.err != nil {
		return
	}
	f := strconv.Itoa(frame)
	for i, p := range ps {
		row := []string{
			f,
			strconv.Itoa(i),
			strconv.FormatFloat(p.Pos.X, 'f', 4, 64),
			strconv.FormatFloat(p.Pos.Y, 'f', 4, 64),
			strconv.FormatFloat(p.Vel.X, 'f', 4, 64),
			strconv.FormatFloat(p.Vel.Y, 'f', 4, 64),
		}
		if err := t.w.Write(row); err != nil {
			t.err = err
			return
		}
	}
}

// Flush writes buffered rows and reports the first error seen.
func (t *CSVTrace) Flush() error {
	t.w.Flush()
	if t.err != nil {
		return t.err
	}
	return t.w.Error()
}
