// Package scraper compiles Lua source scripts and keeps them up to date.
package scraper

import (
	"bytes"
	"sync"

	"github.com/anisan-cli/streamkit/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

type compiled struct {
	source []byte
	proto  *lua.FunctionProto
}

var bytecodeCache sync.Map

// PreCompileAndLoad runs the script at scriptPath in L. Compiled prototypes are
// reused until the file content changes.
func PreCompileAndLoad(L *lua.LState, scriptPath string) error {
	content, err := filesystem.API().ReadFile(scriptPath)
	if err != nil {
		return err
	}

	if cached, ok := bytecodeCache.Load(scriptPath); ok {
		if c := cached.(*compiled); bytes.Equal(c.source, content) {
			L.Push(L.NewFunctionFromProto(c.proto))
			return L.PCall(0, lua.MultRet, nil)
		}
	}

	chunk, err := parse.Parse(bytes.NewReader(content), scriptPath)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, scriptPath)
	if err != nil {
		return err
	}

	bytecodeCache.Store(scriptPath, &compiled{source: content, proto: proto})

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

// Forget drops the compiled prototype of scriptPath.
func Forget(scriptPath string) {
	bytecodeCache.Delete(scriptPath)
}
