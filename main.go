package main

import (
	"github.com/liciel-tools/missionscope/cmd"
)

func main() {
	cmd.Execute()
}
