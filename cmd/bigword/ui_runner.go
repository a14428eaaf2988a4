package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"bigword/internal/crosscheck"
	"bigword/internal/ui"
)

type checkOutcome struct {
	report crosscheck.Report
	err    error
}

// runCheckWithUI runs the cross-check while a Bubble Tea program renders
// its events.
func runCheckWithUI(ctx context.Context, out io.Writer, title string, cfg crosscheck.Config) (crosscheck.Report, error) {
	names := cfg.Only
	if len(names) == 0 {
		names = crosscheck.Names()
	}
	events := make(chan crosscheck.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		rep, err := crosscheck.Run(ctx, cfg, crosscheck.ChannelSink{Ch: events})
		outcomeCh <- checkOutcome{report: rep, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Keep the producer from blocking on a full channel.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
