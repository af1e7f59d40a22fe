//go:build ignore

// build.go - dashboard build script
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: all, dashboard, test, clean, release

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	module = "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main"
	binary = "dashboard"
)

var (
	distDir = "dist"

	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
)

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	fmt.Println(colorCyan + "== Teacher Profile Dashboard build ==" + colorReset)
	start := time.Now()

	switch *target {
	case "all", "dashboard":
		buildDashboard(*verbose, false)
	case "test":
		runTests(*verbose)
	case "clean":
		clean()
	case "release":
		clean()
		buildDashboard(*verbose, true)
	default:
		fmt.Println("Targets: all, dashboard, test, clean, release")
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(start).Round(time.Millisecond)))
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func fail(msg string, err error) {
	fmt.Printf("%s[ERROR]%s %s: %v\n", colorRed, colorReset, msg, err)
	os.Exit(1)
}

// buildDashboard compiles cmd/dashboard, stamping build time and commit
// into pkg/contracts.
func buildDashboard(verbose, release bool) {
	printInfo("Building " + binary + "...")

	ldflags := fmt.Sprintf("-X %s/pkg/contracts.BuildTime=%s -X %s/pkg/contracts.GitCommit=%s",
		module, time.Now().UTC().Format(time.RFC3339), module, gitCommit())
	if release {
		ldflags = "-s -w " + ldflags
	}

	out := filepath.Join(distDir, binary)
	args := []string{"build", "-ldflags", ldflags, "-o", out, "./cmd/dashboard"}
	if verbose {
		args = append([]string{"build", "-v"}, args[1:]...)
		fmt.Printf("go %s\n", strings.Join(args, " "))
	}

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if release {
		cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	}
	if err := cmd.Run(); err != nil {
		fail("build failed", err)
	}

	if info, err := os.Stat(out); err == nil {
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", out, float64(info.Size())/1024/1024))
	}
}

func runTests(verbose bool) {
	printInfo("Running Go tests...")
	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fail("tests failed", err)
	}
}

func clean() {
	printInfo("Cleaning " + distDir + "...")
	if err := os.RemoveAll(distDir); err != nil {
		fail("clean failed", err)
	}
}

func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
