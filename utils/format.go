package utils

import (
	"fmt"
	"time"
)

// MessageType classifies the messages printed by the command line tool.
type MessageType int

const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// ANSI colors used for the different message types.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

// Colors enables the ANSI decoration of DecorateText.
// The command line tool turns it off when the output is not a terminal.
var Colors = true

// DecorateText wraps the message in the color of its type.
func DecorateText(s string, msgType MessageType) string {
	if !Colors {
		return s
	}
	var color string
	switch msgType {
	case DefaultMessage:
		color = DefaultColor
	case StatusMessage:
		color = StatusColor
	case SuccessMessage:
		color = SuccessColor
	case ErrorMessage:
		color = ErrorColor
	default:
		return s
	}
	return color + s + DefaultColor
}

// FormatTime formats a duration in a human readable form, e.g. "1h 2m 3.00s".
func FormatTime(d time.Duration) string {
	secs := d.Seconds() - float64(int64(d.Minutes()))*60
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %.2fs", int64(d.Minutes()), secs)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm %.2fs", int64(d.Hours()), int64(d.Minutes())%60, secs)
	}
	days := int64(d.Hours()) / 24
	return fmt.Sprintf("%dd %dh %dm %.2fs", days, int64(d.Hours())%24, int64(d.Minutes())%60, secs)
}
