package orbel

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// TrajectorySample is one animation step captured for export: the phase pair
// and the 3-D and sky-plane positions of each rendered body.
type TrajectorySample struct {
	Epoch  time.Time
	Trueν  float64
	MeanM  float64
	Bodies []Point3
	Sky    []Point2
}

// Sample captures the scene's current body positions stamped at the given epoch.
func (s *Scene) Sample(epoch time.Time) TrajectorySample {
	orbit := s.model.Orbit()
	sample := TrajectorySample{Epoch: epoch, Trueν: s.phase.Trueν(), MeanM: s.phase.MeanM()}
	x, y, z := orbit.RelativePositionAt(s.phase.Trueν(), false)
	if s.mode == ViewAbsolute {
		c1, c2 := s.model.Masses().BarycentricFactors()
		for _, c := range []float64{c1, c2} {
			p := Point3{X: c * x, Y: c * y, Z: c * z}
			sample.Bodies = append(sample.Bodies, p)
			sample.Sky = append(sample.Sky, skyPoint(p.X, p.Y))
		}
		return sample
	}
	sample.Bodies = []Point3{{X: x, Y: y, Z: z}}
	sample.Sky = []Point2{skyPoint(x, y)}
	return sample
}

// WriteTrajectoryCSV dumps samples as CSV: a Julian-date stamp, the phase
// pair, then per-body 3-D and sky-plane coordinates. All samples must carry
// the same body count.
func WriteTrajectoryCSV(w io.Writer, samples []TrajectorySample) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to export")
	}
	cw := csv.NewWriter(w)
	header := []string{"jd", "nu_rad", "m_rad"}
	for b := range samples[0].Bodies {
		header = append(header,
			fmt.Sprintf("body%d_x", b+1), fmt.Sprintf("body%d_y", b+1), fmt.Sprintf("body%d_z", b+1),
			fmt.Sprintf("body%d_u", b+1), fmt.Sprintf("body%d_v", b+1))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, sample := range samples {
		if len(sample.Bodies) != len(samples[0].Bodies) {
			return fmt.Errorf("inconsistent body count in trajectory samples")
		}
		row := []string{
			fmt.Sprintf("%.8f", julian.TimeToJD(sample.Epoch)),
			fmt.Sprintf("%.12f", sample.Trueν),
			fmt.Sprintf("%.12f", sample.MeanM),
		}
		for b, p := range sample.Bodies {
			row = append(row,
				fmt.Sprintf("%.12f", p.X), fmt.Sprintf("%.12f", p.Y), fmt.Sprintf("%.12f", p.Z),
				fmt.Sprintf("%.12f", sample.Sky[b].U), fmt.Sprintf("%.12f", sample.Sky[b].V))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSceneJSON serializes a Frame as an indented JSON catalog for an
// external renderer.
func WriteSceneJSON(w io.Writer, frame Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(frame)
}
