package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	appDirName   = "region-capture"
	logFileName  = "region_capture_debug.log"
	maxSizeBytes = 10 * 1024 * 1024 // 10 MB
	maxArchives  = 3
)

// Path returns the log file location under the user cache directory, or the
// working directory when no cache directory is known.
func Path() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return logFileName
	}
	return filepath.Join(dir, appDirName, logFileName)
}

// Setup routes the standard logger. File logging uses basic size-based
// rotation (10MB, max 3 archives); verbose mirrors logs to stderr. With both
// off, logs are discarded so stdout stays clean for image output.
func Setup(enableFileLogging, verbose bool) {
	SetupWithPath(enableFileLogging, verbose, Path())
}

func SetupWithPath(enableFileLogging, verbose bool, path string) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var writers []io.Writer
	if verbose {
		writers = append(writers, os.Stderr)
	}
	if enableFileLogging {
		w, err := newRotatingWriter(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			writers = append(writers, w)
		}
	}

	switch len(writers) {
	case 0:
		log.SetOutput(io.Discard)
	case 1:
		log.SetOutput(writers[0])
	default:
		log.SetOutput(io.MultiWriter(writers...))
	}
}

type rotatingWriter struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func newRotatingWriter(path string) (*rotatingWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	rotateIfNeeded(path, 0)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, err
	}
	return &rotatingWriter{path: path, f: f}, nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// naive rotation check per write
	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > maxSizeBytes {
		_ = w.f.Close()
		rotateIfNeeded(w.path, int64(len(p)))
		nf, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return 0, err
		}
		w.f = nf
	}
	return w.f.Write(p)
}

// rotateIfNeeded shifts path to .1, .2, .3 (oldest discarded) once adding
// pending bytes would push it past the size limit.
func rotateIfNeeded(path string, pending int64) {
	st, err := os.Stat(path)
	if err != nil || st.Size()+pending <= maxSizeBytes {
		return
	}
	_ = os.Remove(archiveName(path, maxArchives))
	for i := maxArchives - 1; i >= 1; i-- {
		_ = os.Rename(archiveName(path, i), archiveName(path, i+1))
	}
	_ = os.Rename(path, archiveName(path, 1))
}

func archiveName(path string, n int) string { return fmt.Sprintf("%s.%d", path, n) }
