// FILE: actionlog/src/internal/actionlog/callable.go
package actionlog

import (
	"reflect"
	"runtime"
	"strings"
)

const unknownSymbol = "unknown"

// callable identifies a wrapped function: its declared name and the package it
// was defined in, which keys the channel it logs to
type callable struct {
	name string
	unit string
}

var receiverCleaner = strings.NewReplacer("(*", "", "(", "", ")", "")

// resolveCallable reads the runtime symbol of fn
func resolveCallable(fn any) callable {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return callable{name: unknownSymbol, unit: unknownSymbol}
	}
	return symbolFromPC(v.Pointer())
}

// callerUnit returns the package of the function skip frames above its caller
func callerUnit(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return unknownSymbol
	}
	return symbolFromPC(pc).unit
}

func symbolFromPC(pc uintptr) callable {
	f := runtime.FuncForPC(pc)
	if f == nil {
		return callable{name: unknownSymbol, unit: unknownSymbol}
	}
	return splitSymbol(f.Name())
}

// splitSymbol turns "example.com/pkg.(*Type).Method-fm" into unit
// "example.com/pkg" and name "Type.Method"
func splitSymbol(symbol string) callable {
	symbol = strings.TrimSuffix(symbol, "-fm")
	if i := strings.Index(symbol, "[...]"); i >= 0 {
		symbol = symbol[:i] + symbol[i+len("[...]"):]
	}

	slash := strings.LastIndex(symbol, "/")
	dot := strings.Index(symbol[slash+1:], ".")
	if dot < 0 {
		return callable{name: symbol, unit: symbol}
	}
	dot += slash + 1

	return callable{
		unit: symbol[:dot],
		name: receiverCleaner.Replace(symbol[dot+1:]),
	}
}
