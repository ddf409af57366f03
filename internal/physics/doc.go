// Package physics holds the physical constants and unit conversions shared
// by the band-structure and electrostatics tools.
//
// Energies are carried in joules and fields in V/m internally; the CLI takes
// meV and kV/cm:
//
//	offset := physics.EnergyFromMeV(10)    // 10 meV in J
//	f := physics.FieldFromKVPerCm(25)      // 25 kV/cm in V/m
package physics
