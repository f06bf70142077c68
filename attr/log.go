package attr

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
	logger = log.New(w, "attr: ", log.Lshortfile)
}

// SetDebugMode toggles verbose trace logging of attribute dispatch,
// mirroring wasm.SetDebugMode in the teacher.
func SetDebugMode(enabled bool) {
	PrintDebugInfo = enabled
	w := ioutil.Discard
	if enabled {
		w = os.Stderr
	}
	logger.SetOutput(w)
}
