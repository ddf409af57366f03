package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/gdesim/internal/field"
	"github.com/san-kum/gdesim/internal/material"
	"github.com/san-kum/gdesim/internal/poisson"
	"github.com/san-kum/gdesim/internal/storage"
)

var (
	materialName string
	particleName string
	massArg      string
	printBandgap bool
	alloyFile    string

	uncharged        bool
	centred          bool
	mixed            bool
	ptype            bool
	appliedField     float64
	offset           float64
	permittivityFile string
	chargeFile       string
	baselineFile     string
	poissonFile      string
	totalFile        string
	fieldFile        string
)

func efxvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "efxv",
		Short: "band-edge potential and effective mass from an alloy profile",
		Long: "Reads position [m] and one or two alloy fractions from the alloy file and writes\n" +
			"the band-edge potential to v.r and the effective mass to m.r and m_perp.r.",
		Args: cobra.NoArgs,
		RunE: runEfxv,
	}
	cmd.Flags().StringVarP(&materialName, "material", "M", "gaalas", "gaalas, cdmnte or inalgaas")
	cmd.Flags().StringVarP(&particleName, "particle", "p", "e", "particle: e, h or l")
	cmd.Flags().StringVarP(&massArg, "mass", "m", "auto", "constant effective mass [m_e], or auto")
	cmd.Flags().BoolVarP(&printBandgap, "print-bandgap", "g", false, "write the bandgap profile to Eg.r")
	cmd.Flags().StringVar(&alloyFile, "alloy-file", "alloy-profile.dat", "alloy profile table")
	return cmd
}

func runEfxv(cmd *cobra.Command, args []string) error {
	mat, err := material.ParseMaterial(materialName)
	if err != nil {
		return err
	}
	particle, err := material.ParseParticle(particleName)
	if err != nil {
		return err
	}
	mass, err := material.ParseMass(massArg)
	if err != nil {
		return err
	}

	cols, err := storage.ReadColumns(alloyFile, mat.Columns())
	if err != nil {
		return err
	}
	alloy := material.Alloy{Z: cols[0], X: cols[1]}
	if len(cols) > 2 {
		alloy.Y = cols[2]
	}

	p, err := material.BandEdge(alloy, material.Options{
		Material: mat,
		Particle: particle,
		Mass:     mass,
		Bandgap:  printBandgap,
	})
	if err != nil {
		return err
	}
	for _, w := range p.Warnings {
		logger.Warn(w, "material", mat, "particle", particle.String())
	}

	if err := storage.WriteTable("v.r", p.Z, p.V); err != nil {
		return err
	}
	if p.Mass != nil {
		if err := storage.WriteTable("m.r", p.Z, p.Mass); err != nil {
			return err
		}
		if err := storage.WriteTable("m_perp.r", p.Z, p.MassPerp); err != nil {
			return err
		}
	}
	if p.Bandgap != nil {
		if err := storage.WriteTable("Eg.r", p.Z, p.Bandgap); err != nil {
			return err
		}
	}
	logger.Debug("band-edge profile written", "points", len(p.Z))
	return nil
}

func poissonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poisson",
		Short: "potential induced by a space-charge profile",
		Args:  cobra.NoArgs,
		RunE:  runPoisson,
	}
	cmd.Flags().BoolVar(&uncharged, "uncharged", false, "there is no charge in the structure")
	cmd.Flags().BoolVar(&centred, "centred", false, "pivot the potential about the centre of the structure")
	cmd.Flags().BoolVar(&mixed, "mixed", false, "add the applied bias as a Laplace correction to the zero-field solution")
	cmd.Flags().BoolVar(&ptype, "ptype", false, "treat dopants as acceptors")
	cmd.Flags().Float64VarP(&appliedField, "field", "E", 0, "applied electric field [kV/cm]; fixes the voltage drop when set")
	cmd.Flags().Float64Var(&offset, "offset", 0, "potential at the first sample [meV]")
	cmd.Flags().StringVar(&permittivityFile, "dcpermittivityfile", "eps_dc.r", "dc permittivity table [F/m]")
	cmd.Flags().StringVar(&chargeFile, "chargefile", "cd.r", "charge density table [m⁻³]")
	cmd.Flags().StringVar(&baselineFile, "bandedgepotentialfile", "v_b.r", "baseline potential added to the Poisson potential")
	cmd.Flags().StringVar(&poissonFile, "poissonpotentialfile", "v_p.r", "Poisson potential output")
	cmd.Flags().StringVar(&totalFile, "totalpotentialfile", "v.r", "total potential output")
	cmd.Flags().StringVar(&fieldFile, "fieldfile", "field.r", "electric field output [V/m]")
	return cmd
}

func runPoisson(cmd *cobra.Command, args []string) error {
	z, eps, err := storage.ReadTable(permittivityFile)
	if err != nil {
		return err
	}
	if len(z) < 2 {
		return &field.InputFileError{Path: permittivityFile, Err: fmt.Errorf("%w: need at least 2 points", field.ErrInvalidInput)}
	}
	dz := z[1] - z[0]

	var density []float64
	if !uncharged {
		if _, density, err = storage.ReadTable(chargeFile); err != nil {
			return err
		}
	}

	opt := poisson.Options{
		Field:    appliedField,
		HasField: cmd.Flags().Changed("field"),
		Mixed:    mixed,
		Centred:  centred,
		Offset:   offset,
		PType:    ptype,
	}
	pot, err := poisson.Compute(eps, dz, density, opt)
	if err != nil {
		return err
	}
	if opt.HasField {
		logger.Info("voltage drop", "volts", pot.Drop)
	}

	total := pot.Energy
	if cmd.Flags().Changed("bandedgepotentialfile") {
		_, base, err := storage.ReadTable(baselineFile)
		if err != nil {
			return err
		}
		if total, err = poisson.AddBaseline(pot.Energy, base); err != nil {
			return err
		}
	}

	if err := storage.WriteTable(fieldFile, z, pot.Field); err != nil {
		return err
	}
	if err := storage.WriteTable(poissonFile, z, pot.Energy); err != nil {
		return err
	}
	return storage.WriteTable(totalFile, z, total)
}
