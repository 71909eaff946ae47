// Package main is the entry point for buildmeta, which derives the build
// metadata linked into template-go.
package main

import "template-go/cmd/buildmeta/cmd"

func main() {
	cmd.Execute()
}
