package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/app"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts"
)

func main() {
	version := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
