package frontmatter

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// Serialize encodes fields as YAML (no delimiters) with keys sorted at every
// level, so equal maps always produce equal bytes.
func Serialize(fields map[string]any) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapNode(fields)); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fingerprint returns the mdfp content fingerprint of a Markdown document.
// The fingerprint field itself is excluded so a stamped document hashes the
// same as the unstamped one.
func Fingerprint(content []byte) (string, error) {
	doc, err := Split(content)
	if err != nil {
		return "", err
	}
	fields, err := doc.Fields()
	if err != nil {
		return "", err
	}
	delete(fields, mdfp.FingerprintField)

	fm := ""
	if len(fields) > 0 {
		data, err := Serialize(fields)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(data), "\n")
	}
	body := strings.ReplaceAll(string(doc.Body), "\r\n", "\n")
	return mdfp.CalculateFingerprintFromParts(fm, body), nil
}

// Unstamp removes a single-line top-level fingerprint key from the
// frontmatter and leaves every other byte as it was. A block left empty is
// dropped along with its delimiters. Documents without a stamp are returned
// unchanged.
func Unstamp(content []byte) ([]byte, error) {
	doc, err := Split(content)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(doc.Frontmatter)) == 0 {
		return content, nil
	}
	var root yaml.Node
	if err := yaml.Unmarshal(doc.Frontmatter, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return content, nil
	}
	m := root.Content[0]
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		if key.Value != mdfp.FingerprintField {
			continue
		}
		if value.Kind != yaml.ScalarNode || value.Line != key.Line || value.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
			return content, nil
		}
		if i+2 < len(m.Content) && m.Content[i+2].Line != key.Line+1 {
			return content, nil
		}
		doc.Frontmatter = dropLine(doc.Frontmatter, key.Line)
		if len(bytes.TrimSpace(doc.Frontmatter)) == 0 {
			return doc.Body, nil
		}
		return Join(doc), nil
	}
	return content, nil
}

// dropLine removes the 1-based line n, keeping its neighbours' newlines.
func dropLine(data []byte, n int) []byte {
	lines := bytes.SplitAfter(data, []byte("\n"))
	if n < 1 || n > len(lines) {
		return data
	}
	return bytes.Join(append(lines[:n-1:n-1], lines[n:]...), nil)
}

func mapNode(m map[string]any) *yaml.Node {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		n.Content = append(n.Content, scalar("!!str", k), valueNode(m[k]))
	}
	return n
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func valueNode(v any) *yaml.Node {
	switch vv := v.(type) {
	case nil:
		return scalar("!!null", "null")
	case string:
		return scalar("!!str", vv)
	case bool:
		return scalar("!!bool", strconv.FormatBool(vv))
	case int:
		return scalar("!!int", strconv.Itoa(vv))
	case int64:
		return scalar("!!int", strconv.FormatInt(vv, 10))
	case uint64:
		return scalar("!!int", strconv.FormatUint(vv, 10))
	case float64:
		return scalar("!!float", strconv.FormatFloat(vv, 'g', -1, 64))
	case map[string]any:
		return mapNode(vv)
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range vv {
			seq.Content = append(seq.Content, valueNode(item))
		}
		return seq
	default:
		return scalar("!!str", fmt.Sprint(vv))
	}
}
