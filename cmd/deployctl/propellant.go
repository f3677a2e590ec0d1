package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/constellation-deployment/core"
)

func propellantCmd() *cobra.Command {
	var (
		deltaV  float64
		mass    float64
		isp     float64
		vehicle string
	)

	c := &cobra.Command{
		Use:   "propellant",
		Short: "Rocket-equation utility",
		Long: "With --vehicle, print the ideal delta-V of a staged launch vehicle described\n" +
			"in YAML. Otherwise print the propellant needed for --dv at --mass and --isp.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if vehicle != "" {
				lv, err := loadVehicle(vehicle)
				if err != nil {
					return err
				}
				dv, err := lv.DeltaV()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "stages: %d\ndelta-v: %.1f m/s\n", len(lv.Stages), dv)
				return err
			}

			if mass <= 0 || isp <= 0 || deltaV < 0 {
				return fmt.Errorf("--mass and --isp must be > 0 and --dv >= 0")
			}
			prop := core.RequiredPropellantMass(deltaV, mass, isp)
			_, err := fmt.Fprintf(out, "propellant: %.2f kg\nfinal mass: %.2f kg\nmass fraction: %.4f\n",
				prop, mass-prop, prop/mass)
			return err
		},
	}

	c.Flags().Float64Var(&deltaV, "dv", 0, "required delta-V in m/s")
	c.Flags().Float64Var(&mass, "mass", 0, "initial mass in kg")
	c.Flags().Float64Var(&isp, "isp", 0, "specific impulse in s")
	c.Flags().StringVar(&vehicle, "vehicle", "", "YAML launch vehicle description")
	c.MarkFlagsMutuallyExclusive("vehicle", "dv")
	return c
}

func loadVehicle(path string) (core.LaunchVehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.LaunchVehicle{}, fmt.Errorf("read vehicle: %w", err)
	}
	var lv core.LaunchVehicle
	if err := yaml.Unmarshal(data, &lv); err != nil {
		return core.LaunchVehicle{}, fmt.Errorf("decode vehicle %s: %w", path, err)
	}
	if len(lv.Stages) == 0 {
		return core.LaunchVehicle{}, fmt.Errorf("vehicle %s has no stages", path)
	}
	return lv, nil
}
