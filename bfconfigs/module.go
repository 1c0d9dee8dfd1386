// Package bfconfigs provides interpreter settings. Each value is taken from
// its command line flag, then from the first config file that sets it, then
// from a built-in default.
package bfconfigs

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}
