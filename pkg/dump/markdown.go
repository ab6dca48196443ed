package dump

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// fenceLanguages maps file extensions to Markdown fence info strings.
var fenceLanguages = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".rb":   "ruby",
	".rs":   "rust",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".java": "java",
	".sh":   "bash",
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".toml": "toml",
	".md":   "markdown",
	".html": "html",
	".css":  "css",
	".sql":  "sql",
}

// fenceLanguage guesses the code-fence language from a file extension.
// Unknown extensions get a bare fence.
func fenceLanguage(path string) string {
	return fenceLanguages[strings.ToLower(filepath.Ext(path))]
}

// WriteDocument writes the structure listing and the per-file sections to
// the output Markdown file.
func WriteDocument(outputPath, structure string, contents []FileContent, logger *zap.Logger) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(err))
		}
	}()

	writer := bufio.NewWriter(outFile)

	if _, err := fmt.Fprintf(writer, "# Project Structure\n\n```\n%s```\n\n---\n\n", structure); err != nil {
		return fmt.Errorf("failed to write structure listing: %w", err)
	}

	for _, content := range contents {
		if _, err := writer.WriteString(content.Content); err != nil {
			logger.Error("Failed to write section to output file",
				zap.String("file", outputPath),
				zap.String("section", content.Path),
				zap.Error(err))
			return fmt.Errorf("failed to write section %s: %w", content.Path, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
