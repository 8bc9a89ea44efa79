//go:build js && wasm
// +build js,wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"spaedge/pkg/report"
	"spaedge/pkg/rewrite"
)

// handler mirrors the edge platform's (event, context, callback) signature,
// so the wasm build can be dropped into a JS runtime in place of the
// original function.
func handler(this js.Value, args []js.Value) any {
	if len(args) < 3 || args[2].Type() != js.TypeFunction {
		return js.Global().Get("Error").New("handler(event, context, callback) requires a callback")
	}
	callback := args[2]

	raw := js.Global().Get("JSON").Call("stringify", args[0]).String()
	var ev rewrite.Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		callback.Invoke("decode event: " + err.Error())
		return nil
	}
	req, err := rewrite.HandleEvent(context.Background(), ev)
	if err != nil {
		callback.Invoke(err.Error())
		return nil
	}
	b, err := json.Marshal(req)
	if err != nil {
		callback.Invoke(err.Error())
		return nil
	}
	callback.Invoke(js.Null(), js.Global().Get("JSON").Call("parse", string(b)))
	return nil
}

// check renders a plain-text report for a list of URIs, for browser demos.
func check(this js.Value, args []js.Value) any {
	uris := make([]string, 0, len(args))
	for _, a := range args {
		uris = append(uris, a.String())
	}
	return report.Build(report.Evaluate(uris), report.FilterAll, report.Options{Colorize: false})
}

func main() {
	js.Global().Set("handler", js.FuncOf(handler))
	js.Global().Set("checkRewrites", js.FuncOf(check))
	select {} // block forever; WASM module stays alive
}
