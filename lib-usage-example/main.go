package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/liciel-tools/missionscope/pkg/extract"
	"github.com/liciel-tools/missionscope/pkg/scan"
)

func main() {
	// Usage: go run *.go -root /path/to/missions -prefix 2024-

	rootFlag := flag.String("root", "", "Directory holding the mission folders")
	prefixFlag := flag.String("prefix", "", "Only decode folders starting with this prefix")

	// Parse the command-line flags
	flag.Parse()

	if *rootFlag == "" {
		fmt.Println("Root is required. Please provide the scan root using -root flag.")
		return
	}

	params := scan.Params{Mode: scan.ModeAll}
	if *prefixFlag != "" {
		params = scan.Params{Mode: scan.ModePrefix, Prefix: *prefixFlag}
	}

	// Any fs.FS works as a root, os.DirFS is the usual one
	res, err := scan.Scan(context.Background(), scan.Config{
		Root:      os.DirFS(*rootFlag),
		Params:    params,
		Extractor: &extract.Extractor{},
		Confirm:   func(total int) bool { return true },
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, m := range res.Missions {
		fmt.Println(m.FolderID, m.Window.ActiveTypes)
		for _, s := range m.ConclusionSegments {
			fmt.Printf("  %s: %s\n", s.MissionType, s.Text)
		}
	}
	fmt.Printf("%d missions, %d skipped\n", len(res.Missions), res.Skipped)
}
