package session

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var traceHeader = []string{"frame", "step", "time", "body", "x", "y", "z", "qw", "qx", "qy", "qz", "vx", "vy", "vz"}

// Trace runs frames headless frames of elapsed seconds each and writes one CSV row per
// body every `every` frames (and after the last frame). Static bodies are skipped.
func (s *Session) Trace(w io.Writer, frames, every int, elapsed float64) error {
	if frames < 0 || every < 1 {
		return fmt.Errorf("trace: frames %d, every %d: need frames >= 0 and every >= 1", frames, every)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(traceHeader); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	for f := 1; f <= frames; f++ {
		s.Frame(elapsed)
		if f%every != 0 && f != frames {
			continue
		}
		if err := s.writeRows(cw, f); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	return nil
}

func (s *Session) writeRows(cw *csv.Writer, frame int) error {
	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', 8, 64) }
	for _, b := range s.World.Bodies() {
		if b.IsStatic() {
			continue
		}
		p, q := b.Pose()
		v := b.LinearVelocity()
		row := []string{
			strconv.Itoa(frame),
			strconv.FormatUint(s.World.StepCount(), 10),
			ff(s.World.Time()),
			s.BodyName(b.Handle()),
			ff(p[0]), ff(p[1]), ff(p[2]),
			ff(q.W), ff(q.V[0]), ff(q.V[1]), ff(q.V[2]),
			ff(v[0]), ff(v[1]), ff(v[2]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("trace frame %d: %w", frame, err)
		}
	}
	return nil
}
