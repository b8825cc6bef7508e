// Command glcmdtrace records a demo frame into a glcmd pool and replays
// it through a registered executor.
//
// Usage:
//
//	glcmdtrace [flags]
//
// Flags:
//
//	--config string       config file (default is $HOME/.glcmd/config.yaml)
//	--executor string     executor to replay through (default "trace")
//	--frames int          number of frames to record (default 1)
//	--individual          back every recorder with its own storage
//	--max-viewports int   device viewport limit (default 16)
//	-v, --verbose         log pool and recorder activity to stderr
//
// Every flag can also be set in the config file or as a GLCMD_ environment
// variable, e.g. GLCMD_MAX_VIEWPORTS=8.
package main

import (
	"os"

	"github.com/gogpu/glcmd/cmd/glcmdtrace/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
