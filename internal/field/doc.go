// Package field provides the core data types for one-dimensional diffusion
// simulation.
//
// The package defines the mesh and the sampled quantities that live on it:
//
//   - [Grid]: immutable, uniformly spaced sample positions
//   - [Profile]: a value per grid point (concentration or coefficient)
//
// together with the error taxonomy shared by every other package. Callers
// match failures with [errors.Is] against the sentinels in this package or
// extract details with [errors.As] on the typed errors.
//
// # Example
//
//	g, err := field.NewGrid(z)
//	if err != nil {
//	    return err
//	}
//	x := field.Profile(c)
//
// # Thread Safety
//
// A Grid is read-only after construction and may be shared freely. Profiles
// are plain slices and follow the usual Go aliasing rules.
package field
