// Package main is the entry point for template-go.
package main

import "template-go/cmd/template/cmd"

func main() {
	cmd.Execute()
}
