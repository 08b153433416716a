package lib

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// LoggerStruct writes caller-prefixed lines to stderr, which lambda ships to
// cloudwatch. Set LOGGING=n to silence everything but Fatal.
type LoggerStruct struct {
	Print    func(args ...interface{})
	Flush    func()
	disabled bool
}

var Logger = &LoggerStruct{
	Print: func(args ...interface{}) {
		fmt.Fprint(os.Stderr, args...)
	},
	Flush:    func() {},
	disabled: loggingDisabled(os.Getenv("LOGGING")),
}

func loggingDisabled(value string) bool {
	return strings.ToLower(value + " ")[:1] == "n"
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???: "
	}
	parts := strings.Split(file, "/")
	if len(parts) > 2 {
		file = strings.Join(parts[len(parts)-2:], "/")
	}
	return fmt.Sprintf("%s:%d: ", file, line)
}

func join(v []interface{}) string {
	var xs []string
	for _, x := range v {
		xs = append(xs, fmt.Sprint(x))
	}
	return strings.Join(xs, " ")
}

func (l *LoggerStruct) Println(v ...interface{}) {
	if !l.disabled {
		l.Print(caller(), join(v), "\n")
	}
}

func (l *LoggerStruct) Printf(format string, v ...interface{}) {
	if !l.disabled {
		l.Print(caller() + fmt.Sprintf(format, v...))
	}
}

func (l *LoggerStruct) Fatal(v ...interface{}) {
	l.Print(caller(), join(v), "\n")
	l.Flush()
	os.Exit(1)
}

func (l *LoggerStruct) Fatalf(format string, v ...interface{}) {
	l.Print(caller() + fmt.Sprintf(format, v...))
	l.Flush()
	os.Exit(1)
}
