package render

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// applySketch displaces every primitive point with smooth noise, giving the
// scene a hand-drawn wobble. The same seed always yields the same scene.
func applySketch(scene *Scene, cfg Sketch) {
	noise := opensimplex.New(cfg.Seed)
	jitter := func(pt Point) Point {
		return Point{
			X: pt.X + noise.Eval2(pt.X*cfg.Frequency, pt.Y*cfg.Frequency)*cfg.Amplitude,
			Y: pt.Y + noise.Eval2(pt.X*cfg.Frequency+101, pt.Y*cfg.Frequency+101)*cfg.Amplitude,
		}
	}
	for i := range scene.Paths {
		for j, pt := range scene.Paths[i].Points {
			scene.Paths[i].Points[j] = jitter(pt)
		}
	}
	for i := range scene.Segments {
		scene.Segments[i].From = jitter(scene.Segments[i].From)
		scene.Segments[i].To = jitter(scene.Segments[i].To)
	}
	for i := range scene.Circles {
		scene.Circles[i].Center = jitter(scene.Circles[i].Center)
	}
}
