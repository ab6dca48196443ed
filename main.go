package main

import (
	"log"
	"os"
	"strings"

	"treekit/cmd"
	"treekit/pkg/logging"
	"treekit/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := logging.Setup(false, "treekit", version.Get().Version); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := logging.Logger

	if err := cmd.Execute(logger); err != nil {
		// Verbose mode may have swapped the global logger; report through
		// whichever is current.
		zap.L().Error("treekit execution failed", zap.Error(err))
		syncLogger(zap.L())
		os.Exit(1)
	}

	syncLogger(zap.L())
}

// syncLogger flushes the logger, but only when stderr can actually be synced.
// Syncing a terminal or closed pipe returns spurious "invalid argument" errors.
func syncLogger(logger *zap.Logger) {
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
