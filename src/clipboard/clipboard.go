package clipboard

import (
	"errors"
	"sync"

	"golang.design/x/clipboard"
)

var (
	writeMu sync.Mutex
	initErr error
	once    sync.Once
)

// Init prepares the system clipboard. It is safe to call more than once.
func Init() error {
	once.Do(func() {
		initErr = clipboard.Init()
	})
	return initErr
}

// WriteImage places PNG data on the clipboard. The returned channel is closed
// when another application takes ownership of the clipboard; on X11 the data
// is only served while this process is alive.
func WriteImage(png []byte) (<-chan struct{}, error) {
	if len(png) == 0 {
		return nil, errors.New("empty image")
	}
	if err := Init(); err != nil {
		return nil, err
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	return clipboard.Write(clipboard.FmtImage, png), nil
}
