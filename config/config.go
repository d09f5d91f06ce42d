// This file is part of Softgun.
//
// Softgun is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Softgun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Softgun.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads a [section]/key=value configuration file:
// global.cpu_clock, global.imagedir, and per-device parameters, read once
// at initialization. The format is small enough that the reader is a
// plain line scanner.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sgcore/softgun/errors"
)

// Config holds every key=value pair read from a file, keyed by
// "section.key".
type Config struct {
	values map[string]string
}

// Read parses path into a Config. Lines starting with ';' or '#' are
// comments; blank lines are ignored.
func Read(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &Config{values: make(map[string]string)}
	section := "global"
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Errorf(errors.ConfigSyntaxError, path, lineNum, line)
		}
		c.values[section+"."+strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) lookup(section, key string) (string, error) {
	v, ok := c.values[section+"."+key]
	if !ok {
		return "", errors.Errorf(errors.ConfigMissingValue, key, section)
	}
	return v, nil
}

// String returns a string-valued key.
func (c *Config) String(section, key string) (string, error) {
	return c.lookup(section, key)
}

// Int returns an integer-valued key.
func (c *Config) Int(section, key string) (int, error) {
	v, err := c.lookup(section, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s.%s: %w", section, key, err)
	}
	return n, nil
}
