package editor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Open launches an editor on path and returns without waiting for it to
// exit. The command comes from editorCmd, falling back to $VISUAL then
// $EDITOR. The path is passed as a discrete argument, never through a
// shell, and paths with control characters are refused outright.
func Open(log *logrus.Logger, editorCmd, path string) error {
	if containsControlChars(path) {
		return fmt.Errorf("refusing to open path with control characters")
	}
	cmd := resolveCommand(editorCmd)
	if cmd == "" {
		return fmt.Errorf("no editor configured: set editor in config or $VISUAL/$EDITOR")
	}

	proc := exec.Command(cmd, path)
	if err := proc.Start(); err != nil {
		log.WithError(err).WithField("editor", cmd).Warn("editor launch failed")
		return fmt.Errorf("launching editor %s: %w", cmd, err)
	}
	log.WithFields(logrus.Fields{"editor": cmd, "path": path}).Debug("editor launched")

	// reap the child so a long editor session never leaves a zombie
	go func() { _ = proc.Wait() }()
	return nil
}

func resolveCommand(editorCmd string) string {
	if editorCmd != "" {
		return editorCmd
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return os.Getenv("EDITOR")
}

func containsControlChars(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
