package dump

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// binaryExtensions are known binary formats skipped without sniffing.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".pdf": true, ".zip": true, ".tar": true, ".gz": true,
	".bz2": true, ".xz": true, ".7z": true, ".exe": true, ".dll": true,
	".so": true, ".dylib": true, ".a": true, ".o": true, ".class": true,
	".jar": true, ".pyc": true, ".pyd": true, ".db": true, ".sqlite": true,
	".sqlite3": true, ".woff": true, ".woff2": true, ".ttf": true,
	".eot": true, ".mp3": true, ".mp4": true, ".avi": true, ".mov": true,
}

// isBinaryFile checks if a file is likely to be binary by reading its first
// few bytes and checking for null bytes or a high ratio of non-printable
// characters.
func isBinaryFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	buffer = buffer[:n]

	if bytes.Contains(buffer, []byte{0}) {
		return true, nil
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}

	if len(buffer) == 0 {
		return false, nil // Empty files are considered text
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3, nil
}

// isPrintable checks if a byte represents a printable character. Anything
// above ASCII passes through so UTF-8 text is not misclassified.
func isPrintable(b byte) bool {
	return b >= 32 || b == '\n' || b == '\r' || b == '\t'
}

// isCommonBinaryExtension checks if the file has a known binary extension.
func isCommonBinaryExtension(path string) bool {
	return binaryExtensions[strings.ToLower(filepath.Ext(path))]
}
