package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/pkg/missions"
)

// segmentCmd implements: missionscope segment [text]
var segmentCmd = &cobra.Command{
	Use:   "segment [text]",
	Short: "Split a conclusion text per mission type",
	Long:  "Split a conclusion text per mission type. The text is read from stdin when no argument is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		types, _ := cmd.Flags().GetString("types")
		bits, _ := cmd.Flags().GetString("bits")

		active := parseTypeList(types)
		if bits != "" {
			active = append(active, missions.DecodeBits(bits)...)
		}
		if len(active) == 0 {
			return errors.New("give the active mission types with --types or --bits")
		}
		for _, t := range active {
			if missions.TypeIndex(t) < 0 {
				return fmt.Errorf("unknown mission type %q", t)
			}
		}

		text := strings.Join(args, " ")
		if len(args) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			text = string(data)
		}

		for _, s := range missions.SegmentConclusion(text, active) {
			fmt.Printf("%s: %s\n", s.MissionType, s.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(segmentCmd)
	segmentCmd.Flags().String("types", "", `Active mission types separated by commas or semicolons, e.g. "DPE,Gaz"`)
	segmentCmd.Flags().String("bits", "", "Scheduled-missions bitfield giving the active types")
}

// parseTypeList splits a list of mission-type labels. Labels contain
// spaces, so only commas and semicolons separate them.
func parseTypeList(s string) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
