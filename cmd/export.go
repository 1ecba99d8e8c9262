package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/internal/utils"
	"github.com/liciel-tools/missionscope/pkg/storage"
)

// exportCmd represents the parent `export` command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered missions of a JSON export",
}

// exportCSVCmd implements: missionscope export csv
var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write the folder identifiers of the filtered missions as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = csvPath()
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SaveCSVFile(out); err != nil {
			if errors.Is(err, storage.ErrEmptySelection) {
				return fmt.Errorf("no mission matches the filters, %s not written", out)
			}
			return err
		}
		utils.Log.Infof("Exported %s folder identifiers to %s", humanize.Comma(int64(len(s.Filtered()))), out)
		return nil
	},
}

// exportJSONCmd implements: missionscope export json
var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Write the filtered missions as a new JSON export",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return errors.New("--out is required")
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		list := s.Filtered()
		if len(list) == 0 {
			return fmt.Errorf("no mission matches the filters, %s not written", out)
		}
		if err := storage.SaveFile(out, list, time.Now()); err != nil {
			return err
		}
		utils.Log.Infof("Exported %s missions to %s", humanize.Comma(int64(len(list))), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	for _, c := range []*cobra.Command{exportCSVCmd, exportJSONCmd} {
		exportCmd.AddCommand(c)
		addInputFlag(c)
		addFilterFlags(c)
	}
	exportCSVCmd.Flags().StringP("out", "O", "", "CSV path (default: export.csv_path from config)")
	exportJSONCmd.Flags().StringP("out", "O", "", "JSON path")
}
