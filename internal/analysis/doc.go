// Package analysis characterises concentration profiles.
//
//   - [ComputeMoments]: dose, centroid, variance and RMS width
//   - [DiffusionLength]: characteristic spreading distance sqrt(2·D·t)
//   - [EffectiveCoefficient]: D inferred from the growth of the variance
//
// # Diffusion Length
//
// For a constant coefficient and a profile clear of the boundaries the
// variance grows by exactly 2·D·t, so comparing two moments recovers D:
//
//	before := analysis.ComputeMoments(g, x0)
//	after := analysis.ComputeMoments(g, x1)
//	d := analysis.EffectiveCoefficient(before, after, t)
package analysis
