package custom

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// luaSource serialises calls into its state, which is not safe for concurrent use.
type luaSource struct {
	name string

	mu    sync.Mutex
	state *lua.LState
}

func (s *luaSource) Name() string {
	return s.name
}

func (s *luaSource) ID() string {
	return IDfromName(s.name)
}

func newLuaSource(name string, state *lua.LState) *luaSource {
	return &luaSource{
		name:  name,
		state: state,
	}
}

// call runs the global function fn and checks the type of its single result.
func (s *luaSource) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	luaFn := s.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := s.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, err
	}

	retval := s.state.Get(-1)
	s.state.Pop(1)

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
