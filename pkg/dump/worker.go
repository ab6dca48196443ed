package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// ReadFilesConcurrently reads the given files using a worker pool and returns
// one formatted Markdown section per file. Result order is not deterministic;
// callers sort by path before writing.
func ReadFilesConcurrently(root string, files []string, maxWorkers int, logger *zap.Logger) []FileContent {
	jobs := make(chan string, len(files))
	results := make(chan FileContent, len(files))
	var wg sync.WaitGroup

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		workerLogger := logger.With(zap.Int("workerID", w))
		go worker(jobs, results, root, &wg, workerLogger)
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var contents []FileContent
	for content := range results {
		contents = append(contents, content)
	}

	logger.Debug("All files processed", zap.Int("processedFiles", len(contents)))
	return contents
}

// worker is a goroutine that renders files from the jobs channel.
func worker(jobs <-chan string, results chan<- FileContent, root string, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for relPath := range jobs {
		content, err := renderFile(root, relPath)
		if err != nil {
			logger.Error("Worker failed to process file",
				zap.String("file", relPath),
				zap.Error(err))
			continue
		}
		results <- content
		logger.Debug("Worker processed file", zap.String("file", relPath))
	}
}

// renderFile reads one source file and formats it as a Markdown section:
// a heading with the relative path followed by a fenced code block.
func renderFile(root, relPath string) (FileContent, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		return FileContent{}, fmt.Errorf("reading file %s: %w", relPath, err)
	}

	text := string(data)
	if text != "" && text[len(text)-1] != '\n' {
		text += "\n"
	}

	section := fmt.Sprintf("## `%s`\n\n```%s\n%s```\n\n", relPath, fenceLanguage(relPath), text)
	return FileContent{Path: relPath, Content: section}, nil
}
