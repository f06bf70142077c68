package cfg

import (
	"io/ioutil"
	"log"
	"os"
)

// PrintDebugInfo enables verbose block/edge construction tracing.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "cfg: ", log.Lshortfile)
}

// SetDebugMode toggles verbose block/edge construction tracing.
func SetDebugMode(enabled bool) {
	PrintDebugInfo = enabled
	if enabled {
		logger.SetOutput(os.Stderr)
	} else {
		logger.SetOutput(ioutil.Discard)
	}
}
