package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"

	"github.com/liciel-tools/missionscope/internal/utils"
	"github.com/liciel-tools/missionscope/pkg/scan"
)

// askYesNo asks question on the terminal until the answer is yes or no.
// A closed input counts as no.
func askYesNo(question string) bool {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
		Stdout: os.Stderr,
	})
	if err != nil {
		utils.Log.Warnf("Cannot prompt for confirmation: %v", err)
		return false
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, question+" [y/n]")
	for {
		line, err := rl.Readline()
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "o", "oui":
			return true
		case "n", "no", "non":
			return false
		}
		fmt.Fprintln(os.Stderr, "Please answer y/n.")
	}
}

// confirmLargeScan returns the confirmation callback of a scan; nil when
// the user already agreed with --yes.
func confirmLargeScan(yes bool) func(total int) bool {
	if yes {
		return nil
	}
	return func(total int) bool {
		return askYesNo(fmt.Sprintf("%s folders match the selection. Scan them all?", humanize.Comma(int64(total))))
	}
}

// progressPrinter reports every processed folder on w.
func progressPrinter(w io.Writer, quiet bool) func(scan.Progress) {
	if quiet {
		return nil
	}
	return func(p scan.Progress) {
		status := "ok"
		if p.Skipped {
			status = "skipped"
		}
		fmt.Fprintf(w, "[%s/%s] %s %s\n", humanize.Comma(int64(p.Done)), humanize.Comma(int64(p.Total)), p.Folder, status)
	}
}

func printScanSummary(w io.Writer, res *scan.Result) {
	fmt.Fprintf(w, "Scanned %s folders: %s missions, %s skipped.\n",
		humanize.Comma(int64(res.Candidates)),
		humanize.Comma(int64(len(res.Missions))),
		humanize.Comma(int64(res.Skipped)))
}
