package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const logFilePrefix = "tmux-notes_"

// rotate removes the oldest log files in dir so that at most maxFiles remain
// before a new one is opened. Only files named "tmux-notes_*.log" are touched.
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var logFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, logFilePrefix) && strings.HasSuffix(name, ".log") {
			logFiles = append(logFiles, filepath.Join(dir, name))
		}
	}
	// Leave room for the file Init is about to create.
	keep := maxFiles - 1
	if len(logFiles) <= keep {
		return nil
	}
	sort.Slice(logFiles, func(i, j int) bool {
		info1, err1 := os.Stat(logFiles[i])
		info2, err2 := os.Stat(logFiles[j])
		if err1 != nil || err2 != nil {
			return logFiles[i] < logFiles[j]
		}
		return info1.ModTime().Before(info2.ModTime())
	})
	for i := 0; i < len(logFiles)-keep; i++ {
		_ = os.Remove(logFiles[i])
	}
	return nil
}
