package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved captions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := bootstrap(verbose)
		if err != nil {
			return err
		}
		defer env.Close()

		recs, err := env.store.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No captions saved yet.")
			return nil
		}
		when := color.New(color.FgYellow)
		for _, rec := range recs {
			when.Fprint(out, rec.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "  %s / %s / %s\n", rec.Style, rec.LengthKey, rec.Language)
			if rec.ImagePath != "" {
				fmt.Fprintf(out, "  %s\n", rec.ImagePath)
			}
			fmt.Fprintf(out, "%s\n\n", rec.FinalText)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "How many captions to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
