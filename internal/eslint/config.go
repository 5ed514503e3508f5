package eslint

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// RuleName is the rule whose options carry the member ordering.
const RuleName = "@typescript-eslint/member-ordering"

const (
	packageJSON     = "package.json"
	packageJSONKey  = "eslintConfig"
	defaultOption   = "default"
	memberTypesKey  = "memberTypes"
	severityOffWord = "off"
)

// configFileNames in the order ESLint picks them when a directory holds several.
var configFileNames = []string{
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc.json",
	".eslintrc",
	packageJSON,
}

var errNotJSON = errors.New("not a json document")

// Rule is the member-ordering setting of one configuration file.
type Rule struct {
	// Set is false when the file does not mention the rule.
	Set bool
	// Off is true for severity "off" or 0.
	Off    bool
	Tokens []string
}

// Config is the part of an ESLint configuration file the organizer reads.
type Config struct {
	Path string
	Root bool
	Rule Rule
}

// ParseConfig reads one configuration file. It returns nil without error for
// a package.json that has no eslintConfig section.
func ParseConfig(path string, data []byte) (*Config, error) {
	doc, err := toJSON(path, data)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	parsed := gjson.ParseBytes(doc)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("configuration must be an object, got %s", parsed.Type)
	}
	return &Config{
		Path: path,
		Root: parsed.Get("root").Bool(),
		Rule: ruleOf(parsed.Get("rules")),
	}, nil
}

func toJSON(path string, data []byte) ([]byte, error) {
	name := filepath.Base(path)
	switch {
	case name == packageJSON:
		doc, err := jsonDocument(data)
		if err != nil {
			return nil, err
		}
		section := gjson.GetBytes(doc, packageJSONKey)
		if !section.Exists() {
			return nil, nil
		}
		return []byte(section.Raw), nil
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return yamlToJSON(data)
	case strings.HasSuffix(name, ".json"):
		return jsonDocument(data)
	default:
		// legacy .eslintrc holds either JSON or YAML
		if doc, err := jsonDocument(data); err == nil {
			return doc, nil
		}
		return yamlToJSON(data)
	}
}

// jsonDocument accepts JSON with comments and trailing commas.
func jsonDocument(data []byte) ([]byte, error) {
	doc := jsonc.ToJSON(data)
	if !gjson.ValidBytes(doc) {
		return nil, errNotJSON
	}
	return doc, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}

func ruleOf(rules gjson.Result) Rule {
	value, ok := lookup(rules, RuleName)
	if !ok {
		return Rule{}
	}

	rule := Rule{Set: true}
	severity := value
	if value.IsArray() {
		items := value.Array()
		if len(items) == 0 {
			return rule
		}
		severity = items[0]
		if len(items) > 1 {
			rule.Tokens = orderingOf(items[1])
		}
	}
	rule.Off = isOff(severity)
	return rule
}

// lookup finds key among the members of obj. Rule names contain characters
// that gjson paths treat specially, so the keys are compared directly.
func lookup(obj gjson.Result, key string) (gjson.Result, bool) {
	var found gjson.Result
	ok := false
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

func isOff(severity gjson.Result) bool {
	switch severity.Type {
	case gjson.Number:
		return severity.Int() == 0
	case gjson.String:
		s := strings.ToLower(strings.TrimSpace(severity.String()))
		return s == severityOffWord || s == "0"
	}
	return false
}

// orderingOf picks the first usable ordering among the rule options: the
// "default" key first, then the remaining keys in file order.
func orderingOf(options gjson.Result) []string {
	if !options.IsObject() {
		return nil
	}
	keys := []string{defaultOption}
	options.ForEach(func(k, _ gjson.Result) bool {
		if k.String() != defaultOption {
			keys = append(keys, k.String())
		}
		return true
	})

	for _, key := range keys {
		value, ok := lookup(options, key)
		if !ok {
			continue
		}
		if value.IsObject() {
			value, ok = lookup(value, memberTypesKey)
			if !ok {
				continue
			}
		}
		if value.IsArray() {
			return flatten(value, make([]string, 0, len(value.Array())))
		}
	}
	return nil
}

// flatten collects the strings of a possibly nested array; nested arrays are
// groups whose members rank equally, kept here in their listed order.
func flatten(value gjson.Result, out []string) []string {
	for _, item := range value.Array() {
		switch {
		case item.IsArray():
			out = flatten(item, out)
		case item.Type == gjson.String:
			out = append(out, item.String())
		}
	}
	return out
}
