package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/pkg/table"
)

// listCmd implements: missionscope list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the missions of a JSON export, one per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	addInputFlag(listCmd)
	addFilterFlags(listCmd)
	listCmd.Flags().StringP("output", "o", table.DefaultFlags, "Output flags. Supported: i (folder), o (ordering party), p (owner), a (address), k (property kind), l (lot), v (visit date), r (report date), t (mission types), e (operator), c (conclusion), f (photo). Example: -o iovt")
	listCmd.Flags().StringP("delimiter", "d", " ", "Delimiter between columns")
	listCmd.Flags().Bool("choices", false, "Print the values accepted by each filter instead of the missions")
}

func runList(cmd *cobra.Command, w io.Writer) error {
	outputFlags, _ := cmd.Flags().GetString("output")
	delimiter, _ := cmd.Flags().GetString("delimiter")
	choices, _ := cmd.Flags().GetBool("choices")
	if err := table.ValidateFlags(outputFlags); err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if choices {
		c := s.Choices()
		printChoices(w, "ordering", c.OrderingParties)
		printChoices(w, "owner", c.Owners)
		printChoices(w, "operator", c.Operators)
		printChoices(w, "type", c.MissionTypes)
		return nil
	}
	return table.PrintMissions(w, s.Filtered(), outputFlags, delimiter)
}

func printChoices(w io.Writer, flag string, values []string) {
	fmt.Fprintf(w, "--%s (%d)\n", flag, len(values))
	for _, v := range values {
		fmt.Fprintln(w, "  "+strings.TrimSpace(v))
	}
}
