package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/internal/utils"
	"github.com/liciel-tools/missionscope/pkg/filter"
	"github.com/liciel-tools/missionscope/pkg/scan"
	"github.com/liciel-tools/missionscope/pkg/storage"
)

// addSelectionFlags registers the folder selection flags shared by scan and watch.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "all", "Folder selection mode: all, prefix or list (inferred from --prefix/--list when omitted)")
	cmd.Flags().String("prefix", "", "Only scan folders whose name starts with this prefix (case-sensitive)")
	cmd.Flags().String("list", "", "Folder names separated by spaces, commas or semicolons")
	cmd.Flags().String("list-file", "", "Read folder names from this file ('-' for stdin)")
	cmd.Flags().StringP("out", "O", "", "JSON export path (default: export.path from config)")
}

// paramsFromFlags builds the scan selection from the selection flags.
func paramsFromFlags(cmd *cobra.Command) (scan.Params, error) {
	modeFlag, _ := cmd.Flags().GetString("mode")
	prefix, _ := cmd.Flags().GetString("prefix")
	list, _ := cmd.Flags().GetString("list")
	listFile, _ := cmd.Flags().GetString("list-file")

	if listFile != "" {
		text, err := readListFile(listFile)
		if err != nil {
			return scan.Params{}, err
		}
		list += "\n" + text
	}

	mode, err := scan.ParseMode(modeFlag)
	if err != nil {
		return scan.Params{}, err
	}
	if !cmd.Flags().Changed("mode") {
		switch {
		case strings.TrimSpace(list) != "":
			mode = scan.ModeList
		case prefix != "":
			mode = scan.ModePrefix
		}
	}

	params := scan.Params{Mode: mode, Prefix: prefix, Tokens: scan.ParseTokens(list)}
	return params, params.Validate()
}

func readListFile(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// addInputFlag registers --in on commands reading a JSON export.
func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().String("in", "", "JSON export to read (default: export.path from config)")
}

// addFilterFlags registers the mission filter flags.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("ordering", nil, "Keep missions whose ordering party is one of these names")
	cmd.Flags().StringSlice("owner", nil, "Keep missions whose owner is one of these names")
	cmd.Flags().StringSlice("operator", nil, `Keep missions done by one of these operators ("Family Given (Body)")`)
	cmd.Flags().StringSlice("type", nil, "Keep missions scheduling at least one of these mission types")
	cmd.Flags().String("conclusion", "", "Keep missions whose conclusion contains this text (case-insensitive)")
}

func filterFromFlags(cmd *cobra.Command) filter.Options {
	var o filter.Options
	o.OrderingParties, _ = cmd.Flags().GetStringSlice("ordering")
	o.Owners, _ = cmd.Flags().GetStringSlice("owner")
	o.Operators, _ = cmd.Flags().GetStringSlice("operator")
	o.MissionTypes, _ = cmd.Flags().GetStringSlice("type")
	o.Conclusion, _ = cmd.Flags().GetString("conclusion")
	return o
}

// openSession loads the JSON export named by --in and applies the filter flags.
func openSession(cmd *cobra.Command) (*scan.Session, error) {
	path, _ := cmd.Flags().GetString("in")
	if path == "" {
		path = exportPath()
	}

	s := scan.NewSession(nil, "", sessionOptions())
	n, err := s.LoadFile(path)
	if err != nil {
		s.Close()
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("export file not found: %s (run 'missionscope scan' first)", path)
		}
		return nil, err
	}
	utils.Log.Debugf("Loaded %s missions from %s", humanize.Comma(int64(n)), path)

	if o := filterFromFlags(cmd); !o.IsZero() {
		s.ApplyFilter(o)
		utils.Log.Debugf("%s missions match the filters", humanize.Comma(int64(len(s.Filtered()))))
	}
	return s, nil
}

func sessionOptions() scan.SessionOptions {
	opts := scan.SessionOptions{Log: utils.Log}
	if appConfig != nil {
		opts.ConfirmThreshold = appConfig.Scan.ConfirmThreshold
	}
	return opts
}

func exportPath() string {
	if appConfig != nil {
		return appConfig.Export.Path
	}
	return storage.DefaultJSONPath
}

func csvPath() string {
	if appConfig != nil {
		return appConfig.Export.CSVPath
	}
	return storage.DefaultCSVPath
}
