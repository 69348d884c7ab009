package ui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waleedyaseen/RuneScript-sub000/internal/buildpipeline"
)

// RunWithProgress runs fn while a progress view consumes its events. fn must
// report through the sink it is given; the view closes when fn returns.
func RunWithProgress(ctx context.Context, out io.Writer, title string, files []string, fn func(ctx context.Context, sink buildpipeline.ProgressSink) error) error {
	if fn == nil {
		return fmt.Errorf("missing pipeline function")
	}
	events := make(chan buildpipeline.Event, 256)
	errCh := make(chan error, 1)
	go func() {
		defer close(events)
		errCh <- fn(ctx, buildpipeline.ChannelSink{Ch: events})
	}()

	program := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// после ctrl+c или ошибки view канал ещё открыт: дочитать, чтобы пайплайн не встал
	for range events {
	}
	err := <-errCh
	if uiErr != nil && err == nil {
		return uiErr
	}
	return err
}
