// Package catalog loads locator definition sources into element descriptors.
//
// Each file in the catalog directory defines one logical group; the filename
// minus extension is the group identifier and element identifiers are
// "<group>.<key>". Two formats are supported: line-oriented .properties
// files ("key = kind1=value1;kind2=value2") and YAML group files
// ("key: [kind1=value1, kind2=value2]").
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/appium-healer/pkg/locator"
)

// Catalog holds the parsed element descriptors of every definition source.
type Catalog struct {
	// Elements maps element identifier to its ordered strategy list.
	Elements map[string][]locator.Strategy

	// Warnings collects non-fatal parse problems: unknown strategy kinds,
	// malformed lines, unreadable files.
	Warnings []string
}

// Load reads every definition source in dir. A missing directory yields an
// empty catalog; an unreadable file is recorded as a warning and skipped.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{Elements: make(map[string][]locator.Strategy)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read catalog directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		group := strings.TrimSuffix(name, filepath.Ext(name))

		var parse func(group string, data []byte, c *Catalog)
		switch ext {
		case ".properties":
			parse = parseProperties
		case ".yaml", ".yml":
			parse = parseYAMLGroup
		default:
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name)) //#nosec G304 -- catalog files under the configured dir
		if err != nil {
			c.warnf("failed to read %s: %v", name, err)
			continue
		}
		parse(group, data, c)
	}

	return c, nil
}

// parseProperties parses the line-oriented format:
//
//	login_button = id=login_button;xpath=//Button[@text='Login']
//
// Blank lines and # comments are skipped. Unparsable strategy tokens are
// warned and skipped; a key keeps whatever strategies did parse.
func parseProperties(group string, data []byte, c *Catalog) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			c.warnf("%s: invalid line %q", group, line)
			continue
		}

		key := strings.TrimSpace(parts[0])
		if key == "" {
			c.warnf("%s: missing key in line %q", group, line)
			continue
		}

		strategies := c.parseStrategyList(group, key, parts[1])
		if len(strategies) == 0 {
			continue
		}
		c.Elements[group+"."+key] = strategies
	}
}

// yamlGroup is the YAML group file shape: key -> list of kind=value tokens.
type yamlGroup map[string][]string

// parseYAMLGroup parses a YAML group file:
//
//	login_button:
//	  - id=login_button
//	  - xpath=//Button[@text='Login']
func parseYAMLGroup(group string, data []byte, c *Catalog) {
	var raw yamlGroup
	if err := yaml.Unmarshal(data, &raw); err != nil {
		c.warnf("%s: invalid yaml: %v", group, err)
		return
	}

	for key, tokens := range raw {
		strategies := c.parseStrategyList(group, key, strings.Join(tokens, ";"))
		if len(strategies) == 0 {
			continue
		}
		c.Elements[group+"."+key] = strategies
	}
}

// parseStrategyList parses "kind1=value1;kind2=value2;..." into strategies,
// deduplicated, order preserved.
func (c *Catalog) parseStrategyList(group, key, raw string) []locator.Strategy {
	var strategies []locator.Strategy
	for _, token := range strings.Split(raw, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		s, err := locator.Parse(token)
		if err != nil {
			c.warnf("%s.%s: %v", group, key, err)
			continue
		}
		strategies = append(strategies, s)
	}
	return locator.Dedup(strategies)
}

func (c *Catalog) warnf(format string, v ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, v...))
}
