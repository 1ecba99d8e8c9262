package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/internal/utils"
)

var clipboardWriteAll = clipboard.WriteAll

// idsCmd implements: missionscope ids
var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Print or copy the folder identifiers of the filtered missions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIDs(cmd, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(idsCmd)
	addInputFlag(idsCmd)
	addFilterFlags(idsCmd)
	idsCmd.Flags().BoolP("clipboard", "c", false, "Copy the identifiers to the clipboard instead of printing them")
}

func runIDs(cmd *cobra.Command, w io.Writer) error {
	toClipboard, _ := cmd.Flags().GetBool("clipboard")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	text, err := s.ClipboardText()
	if err != nil {
		return err
	}
	if !toClipboard {
		_, err = fmt.Fprintln(w, text)
		return err
	}
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	utils.Log.Infof("Copied %d folder identifiers to the clipboard", strings.Count(text, "\n")+1)
	return nil
}
