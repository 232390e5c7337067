// Package unpack reverses Dean Edwards' p.a.c.k.e.r. JavaScript packing,
// the obfuscation most embed hosts wrap their player setup in.
package unpack

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNotPacked = errors.New("script is not packed")
	ErrMalformed = errors.New("malformed packed script")
)

var (
	headerPattern = regexp.MustCompile(`eval\s*\(\s*function\s*\(\s*p\s*,\s*a\s*,\s*c\s*,\s*k\s*,\s*e\s*(?:,\s*[rd]\s*)?\)`)
	tailPattern   = regexp.MustCompile(`(?s)\}\s*\(\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")\s*,\s*(\d+|\[\])\s*,\s*(\d+)\s*,\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")\.split\(\s*['"]\|['"]\s*\)`)
	wordPattern   = regexp.MustCompile(`\b\w+\b`)
)

// Detect reports whether script contains a packer header.
func Detect(script string) bool {
	return headerPattern.MatchString(script)
}

type packed struct {
	payload string
	radix   int
	count   int
	symbols []string
}

func parse(block string) (*packed, error) {
	m := tailPattern.FindStringSubmatch(block)
	if m == nil {
		return nil, fmt.Errorf("%w: arguments not found", ErrMalformed)
	}

	p := &packed{payload: m[1] + m[2]}

	if m[3] == "[]" {
		p.radix = 62
	} else {
		radix, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("%w: radix %q", ErrMalformed, m[3])
		}
		p.radix = radix
	}

	count, err := strconv.Atoi(m[4])
	if err != nil {
		return nil, fmt.Errorf("%w: count %q", ErrMalformed, m[4])
	}
	p.count = count
	p.symbols = strings.Split(m[5]+m[6], "|")

	if p.count != len(p.symbols) {
		return nil, fmt.Errorf("%w: count %d does not match %d symbols", ErrMalformed, p.count, len(p.symbols))
	}

	return p, nil
}

// Unpack decodes the first packed block of script.
func Unpack(script string) (string, error) {
	loc := headerPattern.FindStringIndex(script)
	if loc == nil {
		return "", ErrNotPacked
	}

	p, err := parse(script[loc[0]:])
	if err != nil {
		return "", err
	}

	base, err := newUnbaser(p.radix)
	if err != nil {
		return "", err
	}

	payload := strings.ReplaceAll(p.payload, `\\`, `\`)
	payload = strings.ReplaceAll(payload, `\'`, `'`)

	return wordPattern.ReplaceAllStringFunc(payload, func(word string) string {
		index, ok := base.decode(word, len(p.symbols))
		if !ok || index < 0 {
			return word
		}

		if symbol := p.symbols[index]; symbol != "" {
			return symbol
		}
		return word
	}), nil
}

// blocks splits script at every packer header. Each block runs up to the next header.
func blocks(script string) []string {
	starts := headerPattern.FindAllStringIndex(script, -1)
	out := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(script)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		out = append(out, script[loc[0]:end])
	}
	return out
}

func join(script string, decode func(block string) (string, error)) (string, error) {
	parts := blocks(script)
	if len(parts) == 0 {
		return "", ErrNotPacked
	}

	for i, block := range parts {
		unpacked, err := decode(block)
		if err != nil {
			return "", err
		}
		parts[i] = unpacked
	}
	return strings.Join(parts, " "), nil
}

// UnpackAll decodes every packed block in script and joins the results with a space.
func UnpackAll(script string) (string, error) {
	return join(script, Unpack)
}

// Decode is UnpackAll with a per-block fallback: a block the static decoder
// rejects as malformed is handed to Eval while the others stay decoded.
func Decode(script string) (string, error) {
	return join(script, func(block string) (string, error) {
		unpacked, err := Unpack(block)
		if errors.Is(err, ErrMalformed) {
			return Eval(block)
		}
		return unpacked, err
	})
}

// Auto returns the unpacked script when it is packed and the script itself otherwise.
func Auto(script string) string {
	if !Detect(script) {
		return script
	}

	if unpacked, err := Decode(script); err == nil {
		return unpacked
	}
	return script
}
