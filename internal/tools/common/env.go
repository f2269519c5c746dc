package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseEnv reads KEY=VALUE lines. Blank lines and # comments are skipped, an
// optional "export " prefix is dropped and one pair of matching quotes is
// stripped from the value.
func ParseEnv(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		text = strings.TrimPrefix(text, "export ")
		key, value, ok := strings.Cut(text, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return nil, fmt.Errorf("env line %d: expected KEY=VALUE", line)
		}
		values[key] = unquote(strings.TrimSpace(value))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return values, nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// LoadEnvFile applies the file on top of the process environment. Variables
// that are already set win. A missing file is not an error. It returns the
// keys it set.
func LoadEnvFile(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open env file: %w", err)
	}
	defer f.Close()

	values, err := ParseEnv(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var applied []string
	for k, v := range values {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return applied, fmt.Errorf("set %s: %w", k, err)
		}
		applied = append(applied, k)
	}
	return applied, nil
}
