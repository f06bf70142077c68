package insn

import (
	"io/ioutil"
	"log"
	"os"
)

// PrintDebugInfo enables verbose instruction-decode tracing.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "insn: ", log.Lshortfile)
}

// SetDebugMode toggles verbose instruction-decode tracing.
func SetDebugMode(enabled bool) {
	PrintDebugInfo = enabled
	if enabled {
		logger.SetOutput(os.Stderr)
	} else {
		logger.SetOutput(ioutil.Discard)
	}
}
