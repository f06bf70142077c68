package jclass

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/go-jclass/jclass/attr"
	"github.com/go-jclass/jclass/cfg"
	"github.com/go-jclass/jclass/cpool"
	"github.com/go-jclass/jclass/insn"
)

// PrintDebugInfo enables verbose trace logging of the top-level read/write
// path, mirroring wasm.PrintDebugInfo in the teacher.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "jclass: ", log.Lshortfile)
}

// SetDebugMode toggles verbose trace logging across jclass and its four
// subordinate packages (cpool, attr, insn, cfg).
func SetDebugMode(enabled bool) {
	PrintDebugInfo = enabled
	w := ioutil.Discard
	if enabled {
		w = os.Stderr
	}
	logger.SetOutput(w)
	cpool.SetDebugMode(enabled)
	attr.SetDebugMode(enabled)
	insn.SetDebugMode(enabled)
	cfg.SetDebugMode(enabled)
}
