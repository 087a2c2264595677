// Command quote prices a cleaning job from the command line using the same
// tables as the website calculator.
//
// Usage:
//
//	quote --category residential --size "3 BR" --bathrooms 2 --frequency Weekly --add-on oven
//	quote options
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bukassi600104/ultraclean/backend/internal/application/services"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
)

type quoteOutput struct {
	Price   entities.QuoteResult `json:"price"`
	Status  entities.QuoteStatus `json:"status"`
	Display string               `json:"display"`
	Note    string               `json:"note,omitempty"`
}

func newRootCmd() *cobra.Command {
	var sel entities.QuoteSelection
	var category string

	root := &cobra.Command{
		Use:           "quote",
		Short:         "Calculate an instant cleaning quote",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel.Category = entities.ServiceCategory(category)
			result := services.CalculateQuote(sel)

			out := quoteOutput{
				Price:   result,
				Status:  result.Status(),
				Display: result.Display(),
			}
			if !result.IsIndeterminate() {
				out.Note = services.FormatQuoteNote(sel, result)
			}
			return writeJSON(cmd, out)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&category, "category", "c", "", "service category id (run \"quote options\" for the list)")
	flags.StringVarP(&sel.SizeBracket, "size", "s", "", "size bracket, e.g. \"3 BR\" or \"1,000-2,000 sq ft\"")
	flags.StringVarP(&sel.BathroomCount, "bathrooms", "b", "", "bathroom count, e.g. 2 or 4+")
	flags.StringVarP(&sel.Frequency, "frequency", "f", "", "visit frequency, e.g. Weekly")
	flags.StringSliceVarP(&sel.AddOns, "add-on", "a", nil, "add-on id (repeatable)")

	root.AddCommand(&cobra.Command{
		Use:   "options",
		Short: "Print the categories, brackets, frequencies and add-ons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd, services.QuoteOptions())
		},
	})

	return root
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
