// Package trust is the kernel's leveled logger, adapted from the
// teacher's lib/trust package: a maskable set of log levels printed
// through a single sink, with no allocation beyond the formatting
// already required by fmt.
package trust

import "fmt"

type MaskLevel int

const (
	Nothing   MaskLevel = 0x0
	ErrorMask MaskLevel = 0x1
	WarnMask  MaskLevel = 0x2
	InfoMask  MaskLevel = 0x4
	DebugMask MaskLevel = 0x8
	fatalMask MaskLevel = 0x80
)

var level = fatalMask | ErrorMask | WarnMask | InfoMask

// Sink is where formatted log lines go. Defaults to a function that
// writes to stdout via fmt.Print; boards replace it with their UART
// write function at init time, the same role MiniUART plays for the
// teacher's Console.
var Sink func(string) = func(s string) { fmt.Print(s) }

// SetLevel lets a caller pass a mask like ErrorMask|DebugMask to control
// exactly what gets printed. Returns the previous mask.
func SetLevel(mask MaskLevel) MaskLevel {
	prev := level &^ fatalMask
	level = (mask & 0xf) | fatalMask
	return prev
}

func Level() MaskLevel {
	return level
}

func logf(l MaskLevel, format string, params ...interface{}) {
	if level&l == 0 {
		return
	}
	prefix := ""
	switch {
	case l&fatalMask > 0:
		prefix = "FATAL:"
	case l&ErrorMask > 0:
		prefix = "ERROR:"
	case l&WarnMask > 0:
		prefix = " WARN:"
	case l&InfoMask > 0:
		prefix = " INFO:"
	case l&DebugMask > 0:
		prefix = "DEBUG:"
	}
	if len(format) == 0 || format[len(format)-1] != '\n' {
		format += "\n"
	}
	Sink(prefix + fmt.Sprintf(format, params...))
}

// Fatalf prints the message at the unmaskable fatal level and halts. The
// kernel uses this only for conditions it treats as unrecoverable (e.g.
// the interrupt-context misuse debug assertion); there is no recovery path.
func Fatalf(format string, params ...interface{}) {
	logf(fatalMask, format, params...)
	panic(fmt.Sprintf(format, params...))
}

func Errorf(format string, params ...interface{}) { logf(ErrorMask, format, params...) }
func Warnf(format string, params ...interface{})  { logf(WarnMask, format, params...) }
func Infof(format string, params ...interface{})  { logf(InfoMask, format, params...) }
func Debugf(format string, params ...interface{}) { logf(DebugMask, format, params...) }
