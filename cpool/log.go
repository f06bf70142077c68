package cpool

import (
	"io/ioutil"
	"log"
	"os"
)

var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "cpool: ", log.Lshortfile)
}

// SetDebugMode toggles verbose trace logging of pool construction, mirroring
// wasm.SetDebugMode/validate.SetDebugMode in the teacher.
func SetDebugMode(enabled bool) {
	PrintDebugInfo = enabled
	w := ioutil.Discard
	if enabled {
		w = os.Stderr
	}
	logger.SetOutput(w)
}
