package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Icons used by the CLI helpers
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️"
	IconKey     = "🔑"
)

// helperOut is where the section and key/value helpers print
var helperOut io.Writer = os.Stdout

func colorsEnabled() bool {
	l, ok := defaultLogger.(*logger)
	return ok && !l.noColor
}

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	message := fmt.Sprint(args...)
	defaultLogger.Info(IconSuccess + " " + message)
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// LogSection creates a visual section separator
func LogSection(title string) {
	line := strings.Repeat("=", 50)

	if colorsEnabled() {
		_, _ = fmt.Fprintln(helperOut, colorName.Sprint(line))
		_, _ = fmt.Fprintln(helperOut, colorTitle.Sprint(title))
		_, _ = fmt.Fprintln(helperOut, colorName.Sprint(line))
		return
	}
	_, _ = fmt.Fprintln(helperOut, line)
	_, _ = fmt.Fprintln(helperOut, title)
	_, _ = fmt.Fprintln(helperOut, line)
}

// LogKeyValue logs a key-value pair with nice formatting
func LogKeyValue(key string, value interface{}) {
	if colorsEnabled() {
		_, _ = fmt.Fprintf(helperOut, "%s %v\n", colorName.Sprint(key+":"), value)
		return
	}
	_, _ = fmt.Fprintf(helperOut, "%s: %v\n", key, value)
}
