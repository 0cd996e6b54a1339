// Package main provides build targets for the scenctl project using Mage.
//
// Usage:
//
//	mage build     Compile scenctl binary to bin/
//	mage test      Run all tests
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install scenctl to GOPATH/bin
//	mage release   Build portable binaries for all supported platforms
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "scenctl"
	binaryDir  = "bin"
	cmdDir     = "./cmd/scenctl"
)

// releaseTargets lists the platforms a portable build is published for.
var releaseTargets = []struct {
	goos   string
	goarch string
	suffix string
}{
	{goos: "windows", goarch: "amd64", suffix: ".exe"},
	{goos: "linux", goarch: "amd64", suffix: "-linux"},
	{goos: "darwin", goarch: "arm64", suffix: "-darwin"},
}

// Build compiles the scenctl binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Release cross-compiles portable binaries named the way the update
// checker expects to find them on the release feed.
func Release() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	for _, t := range releaseTargets {
		out := filepath.Join(binaryDir, fmt.Sprintf("%s-portable%s", binaryName, t.suffix))
		env := map[string]string{"GOOS": t.goos, "GOARCH": t.goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWithV(env, "go", "build", "-o", out, cmdDir); err != nil {
			return err
		}
	}
	return nil
}
