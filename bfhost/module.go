// Package bfhost runs programs on behalf of the command line: it applies
// the configured tape size, step budget and deadline, and logs every run.
package bfhost

import (
	"github.com/reusee/bf/bfconfigs"
	"github.com/reusee/bf/debugs"
	"github.com/reusee/bf/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs bfconfigs.Module
	Logs    logs.Module
	Debugs  debugs.Module
}
