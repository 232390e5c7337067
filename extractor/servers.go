package extractor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/anisan-cli/streamkit/source"
)

type serverPayload struct {
	Servers []struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	} `json:"servers"`
}

// DecodeServers reads a base64 encoded {"servers":[{"name","id"}]} payload, as
// found after "post=" in an episode's embed link, and builds one server per
// entry whose name has a URL template. "{id}" in a template is replaced by the
// server id. Entries without a template are skipped.
func DecodeServers(payload string, templates map[string]string) ([]source.Server, error) {
	if _, after, found := strings.Cut(payload, "post="); found {
		payload, _, _ = strings.Cut(after, "&")
		if unescaped, err := url.PathUnescape(payload); err == nil {
			payload = unescaped
		}
	}

	raw, err := decodeBase64(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("decode server payload: %w", err)
	}

	var decoded serverPayload
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("parse server payload: %w", err)
	}

	servers := make([]source.Server, 0, len(decoded.Servers))
	for _, s := range decoded.Servers {
		template, ok := templates[s.Name]
		if !ok {
			continue
		}

		servers = append(servers, source.Server{
			Name: s.Name,
			URL:  strings.ReplaceAll(template, "{id}", s.ID),
		})
	}

	return servers, nil
}

func decodeBase64(s string) ([]byte, error) {
	var err error
	for _, encoding := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		var raw []byte
		if raw, err = encoding.DecodeString(s); err == nil {
			return raw, nil
		}
	}
	return nil, err
}
