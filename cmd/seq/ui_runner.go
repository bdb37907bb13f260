package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"seq/internal/driver"
	"seq/internal/ui"
)

// runExpandWithUI expands paths and writes the outputs while a progress
// view follows the events of both steps.
func runExpandWithUI(ctx context.Context, title string, files, paths []string, opts driver.ExpandOptions, jobs int, write driver.WriteOptions) (expandRun, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandRun, 1)
	errCh := make(chan error, 1)

	go func() {
		sink := driver.ChannelSink{Ch: events}
		opts.Progress = sink
		write.Progress = sink
		var run expandRun
		var err error
		run.fs, run.results, err = driver.ExpandPaths(ctx, paths, opts, jobs)
		if err == nil {
			run.written, err = driver.WriteOutputs(ctx, run.results, write)
			run.wrote = true
		}
		outcomeCh <- run
		errCh <- err
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c или ошибка); дочитываем события
	go func() {
		for range events {
		}
	}()
	run, err := <-outcomeCh, <-errCh
	if uiErr != nil {
		return run, uiErr
	}
	return run, err
}
