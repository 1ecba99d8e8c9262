package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/pkg/table"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints statistics about the missions of a JSON export.",
	Long:  "Prints how many missions schedule each mission type and how many each operator performed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		list := s.Filtered()
		if len(list) == 0 {
			fmt.Println("No mission to generate stats.")
			return nil
		}
		return table.PrintStats(os.Stdout, table.ComputeStats(list))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addInputFlag(statsCmd)
	addFilterFlags(statsCmd)
}
