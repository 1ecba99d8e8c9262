package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/internal/utils"
	"github.com/liciel-tools/missionscope/pkg/scan"
)

// scanCmd implements: missionscope scan <root>
var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "Scan the mission folders under a root directory and write the JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		if err := checkRootDir(root); err != nil {
			return err
		}
		params, err := paramsFromFlags(cmd)
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		quiet, _ := cmd.Flags().GetBool("quiet")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = exportPath()
		}

		s := scan.NewSession(os.DirFS(root), root, sessionOptions())
		defer s.Close()

		res, err := s.Scan(cmd.Context(), params, confirmLargeScan(yes), progressPrinter(os.Stderr, quiet))
		if err != nil {
			return err
		}
		if res.Cancelled {
			utils.Log.Info("Scan cancelled.")
			return nil
		}
		printScanSummary(os.Stdout, res)

		if len(res.Missions) == 0 {
			utils.Log.Warn("No mission could be decoded, nothing written.")
			return nil
		}
		if err := s.SaveFile(out, time.Now()); err != nil {
			return err
		}
		utils.Log.Infof("Exported %s missions to %s", humanize.Comma(int64(len(res.Missions))), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	addSelectionFlags(scanCmd)
	scanCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation on large selections")
	scanCmd.Flags().BoolP("quiet", "q", false, "Do not print per-folder progress")
}

func checkRootDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("scan root %s is not a directory", root)
	}
	return nil
}
