package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/liciel-tools/missionscope/internal/utils"
	"github.com/liciel-tools/missionscope/pkg/missions"
	"github.com/liciel-tools/missionscope/pkg/scan"
)

// photoCmd implements: missionscope photo <root> <folder>
var photoCmd = &cobra.Command{
	Use:   "photo <root> <folder>",
	Short: "Resolve the presentation photo of a mission folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, folder := args[0], args[1]
		if err := checkRootDir(root); err != nil {
			return err
		}
		copyTo, _ := cmd.Flags().GetString("copy-to")

		s := scan.NewSession(os.DirFS(root), root, sessionOptions())
		defer s.Close()

		path, size, err := resolvePhoto(cmd.Context(), s, folder, copyTo)
		if err != nil {
			return err
		}
		fmt.Println(filepath.Join(root, folder, filepath.FromSlash(path)))
		utils.Log.Debugf("Presentation photo is %s", humanize.Bytes(uint64(size)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(photoCmd)
	photoCmd.Flags().String("copy-to", "", "Also copy the photo to this file")
}

// resolvePhoto decodes one folder of the session root and opens its
// presentation photo through the session locator. It returns the photo
// path relative to the folder and its size.
func resolvePhoto(ctx context.Context, s *scan.Session, folder, copyTo string) (string, int64, error) {
	res, err := s.Scan(ctx, scan.Params{Mode: scan.ModeList, Tokens: []string{folder}}, nil, nil)
	if err != nil {
		return "", 0, err
	}
	// List tokens select by prefix, so keep only the requested folder.
	var m *missions.Mission
	for _, candidate := range res.Missions {
		if candidate.FolderID == folder {
			m = candidate
			break
		}
	}
	if m == nil {
		return "", 0, fmt.Errorf("mission folder %s could not be decoded", folder)
	}
	if m.Photo == nil {
		return "", 0, fmt.Errorf("mission folder %s has no presentation photo", folder)
	}

	f, err := s.OpenPhoto(m.Photo.ResolvedLocator)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, err
	}
	if copyTo != "" {
		dst, err := os.Create(copyTo)
		if err != nil {
			return "", 0, err
		}
		if _, err := io.Copy(dst, f); err != nil {
			dst.Close()
			return "", 0, err
		}
		if err := dst.Close(); err != nil {
			return "", 0, err
		}
	}
	return m.Photo.RelativePath, info.Size(), nil
}
