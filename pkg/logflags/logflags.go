// Package logflags exposes named, independently gated loggers for each
// layer of the lowering pass, the same way delve's own pkg/logflags
// exposes one gate and one logrus.Entry per subsystem instead of a single
// global logger.
package logflags

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/sirupsen/logrus"
)

var dwarfFlag = false
var lowerFlag = false
var assembleFlag = false

func makeLogger(flag bool, fields logrus.Fields) *logrus.Entry {
	logger := logrus.New().WithFields(fields)
	logger.Logger.Level = logrus.DebugLevel
	if !flag {
		logger.Logger.Level = logrus.PanicLevel
	}
	return logger
}

// Dwarf returns true if the dwarfinfo package should log.
func Dwarf() bool {
	return dwarfFlag
}

// DwarfLogger returns a logger for the DWARF adapter (C2).
func DwarfLogger() *logrus.Entry {
	return makeLogger(dwarfFlag, logrus.Fields{"layer": "dwarfinfo"})
}

// Lower returns true if the lower package should log.
func Lower() bool {
	return lowerFlag
}

// LowerLogger returns a logger for the expression lowerer and its callers
// (C4-C8).
func LowerLogger() *logrus.Entry {
	return makeLogger(lowerFlag, logrus.Fields{"layer": "lower"})
}

// Assemble returns true if the assemble package should log.
func Assemble() bool {
	return assembleFlag
}

// AssembleLogger returns a logger for the program assembler (C9).
func AssembleLogger() *logrus.Entry {
	return makeLogger(assembleFlag, logrus.Fields{"layer": "assemble"})
}

var errLogstrWithoutLog = errors.New("--log-output specified without --log")

// Setup sets the package's logging gates based on the contents of logstr,
// a comma-separated list of layer names ("dwarf", "lower", "assemble").
func Setup(logFlag bool, logstr string) error {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if !logFlag {
		log.SetOutput(io.Discard)
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "lower"
	}
	for _, logcmd := range strings.Split(logstr, ",") {
		switch logcmd {
		case "dwarf":
			dwarfFlag = true
		case "lower":
			lowerFlag = true
		case "assemble":
			assembleFlag = true
		}
	}
	return nil
}
