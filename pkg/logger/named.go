package logger

import (
	"io"
	"os"
	"sync"
)

var (
	namedMu      sync.Mutex
	namedLoggers = make(map[string]Logger)
	namedWriter  io.Writer = os.Stdout
)

// GetLogger returns the logger registered under name, creating it on first
// use. Named loggers write INFO and above to standard output as
// "2006-01-02 15:04:05 - name - LEVEL - message". Asking for the same name
// twice returns the same logger.
func GetLogger(name string) Logger {
	namedMu.Lock()
	defer namedMu.Unlock()

	if l, ok := namedLoggers[name]; ok {
		return l
	}

	l := NewWithConfig(Config{
		Level:    InfoLevel,
		Writer:   namedWriter,
		NoColor:  true,
		ShowTime: true,
		Layout:   LayoutNamed,
		Prefix:   name,
	})
	namedLoggers[name] = l
	return l
}
