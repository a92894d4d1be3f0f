package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"en13813/internal/classes"
	"en13813/internal/conformity"
)

// batchItemOutput is one line of a batch report.
type batchItemOutput struct {
	Index  int                `json:"index"`
	Result *conformity.Result `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

type batchOutput struct {
	AllPassed bool              `json:"all_passed"`
	Items     []batchItemOutput `json:"items"`
}

func assessCmd() *cobra.Command {
	var (
		file     string
		property string
		declared string
		values   []float64
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess test samples against a declared class",
		Long: `Assess one sample set given as flags, or a JSON array of sample sets with
--file (use - for stdin). The exit status is non-zero when any set fails.`,
		Example: `  screedctl assess --property compressive_strength --class C25 --values 26,27,25.5
  screedctl assess --file samples.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				res, err := conformity.Assess(conformity.SampleSet{
					Property:      classes.Property(property),
					DeclaredClass: declared,
					Values:        values,
				})
				if err != nil {
					return err
				}
				if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
				if !res.Passed {
					return errCheckFailed
				}
				return nil
			}

			raw, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			var sets []conformity.SampleSet
			if err := json.Unmarshal(raw, &sets); err != nil {
				return fmt.Errorf("parse sample sets: %w", err)
			}
			items, err := conformity.AssessBatch(cmd.Context(), sets)
			if err != nil {
				return err
			}
			out := batchOutput{AllPassed: conformity.AllPassed(items), Items: make([]batchItemOutput, 0, len(items))}
			for i, it := range items {
				item := batchItemOutput{Index: i, Result: it.Result}
				if it.Err != nil {
					item.Error = it.Err.Error()
				}
				out.Items = append(out.Items, item)
			}
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if !out.AllPassed {
				return errCheckFailed
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "JSON array of sample sets")
	f.StringVar(&property, "property", "", "Property, e.g. compressive_strength")
	f.StringVar(&declared, "class", "", "Declared class, e.g. C25")
	f.Float64SliceVar(&values, "values", nil, "Comma-separated measurements")
	cmd.MarkFlagsMutuallyExclusive("file", "property")
	cmd.MarkFlagsRequiredTogether("property", "class", "values")
	return cmd
}
