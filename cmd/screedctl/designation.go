package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"en13813/internal/classes"
	"en13813/internal/designation"
)

func designationCmd(strict *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "designation",
		Short: "Generate, parse and validate designation codes",
	}
	codec := func() *designation.Codec {
		return designation.New(designation.WithStrictMode(*strict))
	}
	cmd.AddCommand(generateCmd(codec), parseCmd(codec), validateCmd(codec))
	return cmd
}

func generateCmd(codec func() *designation.Codec) *cobra.Command {
	var (
		file   string
		props  designation.Properties
		binder string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a designation from declared classes",
		Long: `Build a designation from declared classes given as flags, or as a JSON
properties document with --file (use - for stdin).`,
		Example: `  screedctl designation generate --binder CT --compressive C25 --flexural F4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file != "" {
				raw, err := readInput(cmd, file)
				if err != nil {
					return err
				}
				props = designation.Properties{}
				if err := json.Unmarshal(raw, &props); err != nil {
					return fmt.Errorf("parse properties: %w", err)
				}
			} else {
				props.BinderType = classes.BinderType(binder)
			}
			code, err := codec().Generate(props)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "JSON properties document")
	f.StringVar(&binder, "binder", "", "Binder type (CT, CA, MA, AS, SR)")
	f.StringVar(&props.Compressive, "compressive", "", "Compressive strength class, e.g. C25")
	f.StringVar(&props.Flexural, "flexural", "", "Flexural strength class, e.g. F4")
	f.StringVar(&props.SurfaceHardness, "surface-hardness", "", "Surface hardness class")
	f.StringVar(&props.BondStrength, "bond-strength", "", "Bond strength class")
	f.StringVar(&props.ImpactResistance, "impact-resistance", "", "Impact resistance class")
	f.StringVar(&props.Indentation, "indentation", "", "Indentation class")
	f.StringVar(&props.FireClass, "fire", "", "Reaction to fire class, e.g. A1fl")
	f.BoolVar(&props.Heated, "heated", false, "Mark as suitable for heated screeds")
	cmd.MarkFlagsMutuallyExclusive("file", "binder")
	return cmd
}

func parseCmd(codec func() *designation.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <designation>",
		Short: "Decode a designation into its classes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := codec().ParseDetailed(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), parsed)
		},
	}
}

func validateCmd(codec func() *designation.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <designation>",
		Short: "Check a designation and report errors and warnings",
		Long:  `Check a designation. The exit status is non-zero when the designation is invalid.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := codec().Validate(args[0])
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Valid {
				return errCheckFailed
			}
			return nil
		},
	}
}
