package unpack

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	alphabet62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphabet95 = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"
)

type unbaser struct {
	radix    int
	alphabet string
}

func newUnbaser(radix int) (*unbaser, error) {
	switch {
	case radix < 2:
		return nil, fmt.Errorf("%w: unsupported radix %d", ErrMalformed, radix)
	case radix <= 36:
		return &unbaser{radix: radix}, nil
	case radix <= 62:
		return &unbaser{radix: radix, alphabet: alphabet62[:radix]}, nil
	case radix <= 95:
		return &unbaser{radix: radix, alphabet: alphabet95[:radix]}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported radix %d", ErrMalformed, radix)
	}
}

// decode returns the value of word, failing once it reaches limit.
func (u *unbaser) decode(word string, limit int) (int, bool) {
	if u.alphabet == "" {
		n, err := strconv.ParseInt(word, u.radix, 64)
		if err != nil || n < 0 || n >= int64(limit) {
			return 0, false
		}
		return int(n), true
	}

	n := 0
	for _, r := range word {
		digit := strings.IndexRune(u.alphabet, r)
		if digit < 0 {
			return 0, false
		}
		n = n*u.radix + digit
		if n >= limit {
			return 0, false
		}
	}
	return n, true
}
