package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Validate bool
	Schema   bool
	LSP      bool
}

var d *debug

func init() {
	d = &debug{}
	d.Validate = boolEnv("AS3_DEBUG_VALIDATE")
	d.Schema = boolEnv("AS3_DEBUG_SCHEMA")
	d.LSP = boolEnv("AS3_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Validate() bool {
	return d.Validate
}
func Schema() bool {
	return d.Schema
}
func LSP() bool {
	return d.LSP
}
