package viz

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/floeze/naviz/internal/animator"
	"github.com/floeze/naviz/internal/parser"
)

// Sender receives reload messages. Satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Watch rebuilds the animation whenever the instruction file changes and
// sends the result to the player. Blocks until the context is cancelled.
func Watch(ctx context.Context, path string, machine *parser.MachineConfig, visual *parser.VisualConfig, send Sender, log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("instructions changed", zap.String("path", path))
			send.Send(reload(path, machine, visual, log))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}

func reload(path string, machine *parser.MachineConfig, visual *parser.VisualConfig, log *zap.Logger) ReloadMsg {
	src, err := os.ReadFile(path)
	if err != nil {
		log.Warn("reading instructions", zap.Error(err))
		return ReloadMsg{Err: err}
	}
	instructions, err := parser.ParseInstructions(string(src))
	if err != nil {
		log.Warn("parsing instructions", zap.Error(err))
		return ReloadMsg{Err: err}
	}
	anim, err := animator.New(machine, visual, instructions)
	if err != nil {
		log.Warn("building animation", zap.Error(err))
		return ReloadMsg{Err: err}
	}
	log.Info("animation reloaded", zap.Float64("duration", anim.Duration()))
	return ReloadMsg{Animator: anim}
}
