package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/style"
	"github.com/spf13/viper"
)

// Field is a single configuration key together with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Type names the Go type of the default value, e.g. "int" or "[]string".
func (f Field) Type() string {
	return fmt.Sprintf("%T", f.Value)
}

// Env is the environment variable that overrides this field.
func (f Field) Env() string {
	name := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App) + "_"
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

// Parse converts command line arguments into a value of the field's type.
// Slices take every argument, scalars only the first one.
func (f Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", f.Key)
	}

	first := strings.TrimSpace(raw[0])
	switch f.Value.(type) {
	case []string:
		return raw, nil
	case string:
		return raw[0], nil
	case int:
		n, err := strconv.Atoi(first)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", f.Key, raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(first)
		if err != nil {
			return nil, fmt.Errorf("%s expects a boolean, got %q", f.Key, raw[0])
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%s has unsupported type %s", f.Key, f.Type())
	}
}

func (f Field) MarshalJSON() ([]byte, error) {
	type view struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}

	return json.Marshal(view{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.Type(),
	})
}

// Pretty renders the field for terminal output.
func (f Field) Pretty() string {
	rows := [][2]string{
		{"Key", style.Fg(color.Purple)(f.Key)},
		{"Env", f.Env()},
		{"Value", highlight(viper.Get(f.Key))},
		{"Default", highlight(f.Value)},
		{"Type", f.Type()},
	}

	var b strings.Builder
	b.WriteString(style.Faint(f.Description))
	for _, row := range rows {
		label := fmt.Sprintf("%-9s", row[0]+":")
		fmt.Fprintf(&b, "\n%s%s", style.Fg(color.Blue)(label), row[1])
	}

	return b.String()
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)("true")
		}
		return style.Fg(color.Red)("false")
	case string:
		return style.Fg(color.Yellow)(strconv.Quote(value))
	default:
		return fmt.Sprint(value)
	}
}
