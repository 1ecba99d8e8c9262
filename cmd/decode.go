package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/liciel-tools/missionscope/internal/utils"
	"github.com/liciel-tools/missionscope/pkg/extract"
	"github.com/liciel-tools/missionscope/pkg/missions"
)

// decodeCmd implements: missionscope decode <folder>
var decodeCmd = &cobra.Command{
	Use:   "decode <folder>",
	Short: "Decode a single mission folder and print its record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		folder := filepath.Clean(args[0])
		if err := checkRootDir(folder); err != nil {
			return err
		}

		x := &extract.Extractor{Log: utils.Log}
		m, err := x.DecodeFolder(os.DirFS(folder), filepath.Base(folder))
		if err != nil {
			return err
		}
		return writeMission(os.Stdout, m, format)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
}

// writeMission prints m as indented JSON or as block-style YAML with the
// same keys.
func writeMission(w io.Writer, m *missions.Mission, format string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

// blockStyle clears the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
