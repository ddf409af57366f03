package physics

// CODATA 2018 values in SI units.
const (
	ElementaryCharge   = 1.602176634e-19  // e [C]
	ElectronMass       = 9.1093837015e-31 // m_e [kg]
	VacuumPermittivity = 8.8541878128e-12 // ε0 [F/m]
)

// FieldFromKVPerCm converts an electric field in kV/cm to V/m.
func FieldFromKVPerCm(f float64) float64 { return f * 1000 * 100 }

// EnergyFromMeV converts meV to J.
func EnergyFromMeV(v float64) float64 { return v * ElementaryCharge / 1000 }
