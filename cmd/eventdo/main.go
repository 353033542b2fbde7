package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tanvirapon/eventdo/internal/duecheck"
	"github.com/tanvirapon/eventdo/internal/history"
	"github.com/tanvirapon/eventdo/internal/storage"
	"github.com/tanvirapon/eventdo/internal/store"
	"github.com/tanvirapon/eventdo/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "eventdo failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	files, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		return err
	}
	st := store.New(files, history.NewLog(cfg.UndoCapacity), nil)
	names, err := files.Discover()
	if err != nil {
		return err
	}
	st.Seed(names)

	var archive *storage.Archive
	if cfg.ArchiveEnabled {
		archive, err = storage.OpenArchive(cfg.ArchivePath)
		if err != nil {
			return err
		}
		defer archive.Close()
	}

	engine := duecheck.NewEngine(cfg.DueCheckBuffer)
	engine.Start()
	defer engine.Stop()

	program := tea.NewProgram(update.NewModelWithRuntime(st, engine, archive, nil))
	_, err = program.Run()
	return err
}
