package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

// bitsCmd implements: missionscope bits <bitstring>
var bitsCmd = &cobra.Command{
	Use:   "bits <bitstring>",
	Short: "Decode a scheduled-missions bitfield into mission types",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printActiveTypes(os.Stdout, args[0])
	},
}

func init() {
	rootCmd.AddCommand(bitsCmd)
}

func printActiveTypes(w io.Writer, bits string) {
	for _, label := range missions.DecodeBits(bits) {
		fmt.Fprintf(w, "%02d %s\n", missions.TypeIndex(label), label)
	}
}
