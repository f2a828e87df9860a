/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for the dialect sniffer. Detects the delimiter,
quote and escape characters of delimited text files, scores individual dialects and
shows the structural abstraction behind a score.
*/

package main

import (
	"os"

	"github.com/kleascm/dialect-sniffer/cmd/sniffer/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
