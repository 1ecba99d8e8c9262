package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/internal/utils"
	"github.com/liciel-tools/missionscope/pkg/scan"
	"github.com/liciel-tools/missionscope/pkg/watch"
)

// watchCmd implements: missionscope watch <root>
var watchCmd = &cobra.Command{
	Use:   "watch <root>",
	Short: "Rescan the root and rewrite the JSON export whenever mission folders change",
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
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = exportPath()
		}
		debounce, _ := cmd.Flags().GetDuration("debounce")
		if !cmd.Flags().Changed("debounce") && appConfig != nil {
			debounce = appConfig.Scan.WatchDebounce
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := scan.NewSession(os.DirFS(root), root, sessionOptions())
		defer s.Close()

		rescan := rescanFunc(s, params, out)
		if err := rescan(ctx, nil); err != nil {
			return err
		}

		w, err := watch.New(watch.Config{
			Root:     root,
			Debounce: debounce,
			Trigger:  rescan,
			Retry:    func(err error) bool { return errors.Is(err, scan.ErrScanInProgress) },
			Log:      utils.Log,
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()

		select {
		case <-ctx.Done():
		case <-w.Done():
		}
		stats := w.Stats()
		utils.Log.Infof("Stopped watching: %d events, %d rescans, %d errors", stats.Events, stats.Triggers, stats.Errors)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addSelectionFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet time before a changed folder triggers a rescan (default: scan.watch_debounce from config)")
}

// rescanFunc scans the session root without confirmation and rewrites the
// JSON export.
func rescanFunc(s *scan.Session, params scan.Params, out string) watch.TriggerFunc {
	return func(ctx context.Context, folders []string) error {
		if len(folders) > 0 {
			utils.Log.Infof("Change detected in %s", strings.Join(folders, ", "))
		}
		res, err := s.Scan(ctx, params, nil, nil)
		if errors.Is(err, scan.ErrNoCandidates) {
			utils.Log.Info("No mission folder matches the selection yet.")
			return nil
		}
		if err != nil {
			return err
		}
		if len(res.Missions) == 0 {
			utils.Log.Warnf("None of the %d folders could be decoded, export left untouched", res.Candidates)
			return nil
		}
		if err := s.SaveFile(out, time.Now()); err != nil {
			return err
		}
		utils.Log.Infof("Exported %s missions to %s (%d skipped)", humanize.Comma(int64(len(res.Missions))), out, res.Skipped)
		return nil
	}
}
