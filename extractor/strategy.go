package extractor

import (
	"regexp"
	"strings"
)

type stream struct {
	url     string
	quality string
}

var (
	firstFilePattern    = regexp.MustCompile(`sources:\s*\[\{\s*\t*file:\s*["']([^"']+)`)
	qualityLabelPattern = regexp.MustCompile(`".*?":\s*"(.*?)"`)
)

func (s Strategy) streams(script string) []stream {
	switch s {
	case FileList:
		return fileList(script)
	case FirstFile:
		return firstFile(script)
	case BareList:
		return bareList(script)
	default:
		return nil
	}
}

func fileList(script string) []stream {
	_, data, found := strings.Cut(script, "sources: [")
	if !found {
		return nil
	}
	data, _, _ = strings.Cut(data, "],")

	entries := strings.Split(data, `file:"`)
	streams := make([]stream, 0, len(entries))
	for _, entry := range entries[1:] {
		url, _, _ := strings.Cut(entry, `"`)
		if url == "" {
			continue
		}

		var quality string
		if _, rest, ok := strings.Cut(entry, `label:"`); ok {
			quality, _, _ = strings.Cut(rest, `"`)
		}

		streams = append(streams, stream{url: url, quality: quality})
	}

	return streams
}

func firstFile(script string) []stream {
	m := firstFilePattern.FindStringSubmatch(script)
	if m == nil {
		return nil
	}
	url := m[1]

	_, block, found := strings.Cut(script, "qualityLabels")
	if !found {
		return []stream{{url: url}}
	}
	block, _, _ = strings.Cut(block, "}")

	labels := qualityLabelPattern.FindAllStringSubmatch(block, -1)
	if len(labels) == 0 {
		return []stream{{url: url}}
	}

	streams := make([]stream, len(labels))
	for i, label := range labels {
		streams[i] = stream{url: url, quality: label[1]}
	}
	return streams
}

func bareList(script string) []stream {
	_, data, found := strings.Cut(script, `sources: ["`)
	if !found {
		return nil
	}

	url, _, _ := strings.Cut(data, `"`)
	if url == "" {
		return nil
	}
	return []stream{{url: url}}
}
