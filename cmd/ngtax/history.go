package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rgehrsitz/ngtax/internal/output"
	"github.com/rgehrsitz/ngtax/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved comparisons, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No saved comparisons.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-16s  %18s  %18s  %18s  %s\n",
			"ID", "Saved", "Label", "Income", "Old tax", "New tax", "Lower")
		for _, rec := range records {
			fmt.Fprintf(out, "%-36s  %-16s  %-16s  %18s  %18s  %18s  %s\n",
				rec.ID,
				humanize.Time(rec.CreatedAt),
				rec.Label,
				output.FormatNaira(rec.AnnualIncome),
				output.FormatNaira(rec.TaxOld),
				output.FormatNaira(rec.TaxNew),
				rec.Cheaper)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a saved comparison",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")

		st, err := openStore(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.Get(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no saved comparison with id %s", args[0])
		}
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), format, outPath, rec.Result)
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of records (0 for all)")
	addStoreFlags(historyCmd)

	showCmd.Flags().StringP("format", "f", "console", "Output format")
	showCmd.Flags().StringP("output", "o", "", "Write the report to this file")
	addStoreFlags(showCmd)

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}
