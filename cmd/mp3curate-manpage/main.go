package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/mp3curate/mp3curate/cmd/mp3curate"
	"github.com/mp3curate/mp3curate/internal/version"
)

func main() {
	rootCmd := mp3curate.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MP3CURATE",
		Section: "1",
		Source:  "mp3curate " + version.Version,
		Manual:  "mp3curate manual",
	}

	// one page per command when a directory is given, else the root page
	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
