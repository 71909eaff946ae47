//go:build ignore
// +build ignore

// This script builds template-go with the metadata derived by cmd/buildmeta.
// Run with: go run scripts/build.go [-o bin/template-go] [-stamp .buildmeta/stamp.json]
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func main() {
	output := flag.String("o", filepath.Join("bin", "template-go"), "output binary")
	stampPath := flag.String("stamp", filepath.Join(".buildmeta", "stamp.json"), "stamp file shared by the emit runs")
	flag.Parse()

	// Both runs share the stamp, so the second one publishes exactly the
	// metadata recorded by the first.
	tags, err := emit("tags", *stampPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	ldflags, err := emit("ldflags", *stampPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	build := exec.Command("go", "build", "-tags", tags, "-ldflags", ldflags, "-o", *output, "./cmd/template")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: go build:", err)
		os.Exit(1)
	}

	fmt.Printf("Built %s\n", *output)
	if tags != "" {
		fmt.Printf("  tags:    %s\n", tags)
	}
	fmt.Printf("  ldflags: %s\n", ldflags)
}

func emit(format, stampPath string) (string, error) {
	cmd := exec.Command("go", "run", "./cmd/buildmeta", "emit", "-f", format, "--stamp", stampPath)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("buildmeta emit -f %s: %w", format, err)
	}
	return strings.TrimSpace(string(out)), nil
}
