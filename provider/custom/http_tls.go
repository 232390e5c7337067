package custom

import (
	"context"
	"net/http"
	"sync"

	"github.com/anisan-cli/streamkit/internal/cache"
	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/network"
	lua "github.com/yuin/gopher-lua"
)

var (
	tlsClient     *network.Client
	tlsClientOnce sync.Once
)

// fingerprinted returns a client that always presents Chrome's TLS fingerprint,
// whatever extract.tls_fingerprint says.
func fingerprinted() *network.Client {
	tlsClientOnce.Do(func() {
		options := network.OptionsFromConfig()
		options.TLSFingerprint = true
		options.CacheTTL = 0

		client, err := network.New(options)
		if err != nil {
			log.Warnf("tls client: %s", err)
			client = network.Default()
		}
		tlsClient = client
	})
	return tlsClient
}

// registerTLSClient exposes the global http_tls module:
//
//	http_tls.get(url [, headers])  -> body
//	http_tls.request({method, url, headers, body, cache}) -> {status, body}
func registerTLSClient(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(httpTLSGet))
	L.SetField(mod, "request", L.NewFunction(httpTLSRequest))
	L.SetGlobal("http_tls", mod)
}

func luaContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func httpTLSGet(L *lua.LState) int {
	url := L.CheckString(1)
	headers := stringMapFromTable(L.OptTable(2, nil))

	resp, err := fingerprinted().Request(luaContext(L), http.MethodGet, url, "", headers)
	if err != nil {
		L.RaiseError("http_tls.get failed: %s", err.Error())
		return 0
	}

	L.Push(lua.LString(resp.Body))
	return 1
}

type tlsCacheEntry struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func httpTLSRequest(L *lua.LState) int {
	opts := record{L.CheckTable(1)}

	method := opts.strOr("method", http.MethodGet)
	url := opts.strOr("url", "")
	body := opts.strOr("body", "")

	if url == "" {
		L.RaiseError("http_tls.request: url is required")
		return 0
	}

	shouldCache := lua.LVAsBool(opts.RawGetString("cache"))
	headers := opts.dict("headers")

	var cacheKey string
	if shouldCache {
		cacheKey = cache.GenerateKey(url+body, method)
		var entry tlsCacheEntry
		if cache.Read(cacheKey, &entry) {
			L.Push(responseTable(L, entry.Status, entry.Body))
			return 1
		}
	}

	resp, err := fingerprinted().Request(luaContext(L), method, url, body, headers)
	if err != nil {
		L.RaiseError("http_tls.request failed: %s", err.Error())
		return 0
	}

	if shouldCache && resp.Status == http.StatusOK {
		_ = cache.Write(cacheKey, tlsCacheEntry{Status: resp.Status, Body: resp.Body})
	}

	L.Push(responseTable(L, resp.Status, resp.Body))
	return 1
}

func responseTable(L *lua.LState, status int, body string) *lua.LTable {
	result := L.NewTable()
	L.SetField(result, "status", lua.LNumber(status))
	L.SetField(result, "body", lua.LString(body))
	return result
}
