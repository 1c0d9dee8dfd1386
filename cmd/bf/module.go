package main

import (
	"github.com/reusee/bf/bfhost"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Host bfhost.Module
}
