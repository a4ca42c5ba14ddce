package ingest

import (
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// keyOrder remembers the declared key order of every mapping in a raw
// document, keyed by JSON Pointer. The parsed OpenAPI model stores
// properties and responses in Go maps, which lose it.
type keyOrder map[string][]string

func readKeyOrder(raw []byte) keyOrder {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil || len(root.Content) == 0 {
		return nil
	}
	order := keyOrder{}
	order.walk(root.Content[0], "#")
	return order
}

func (o keyOrder) walk(n *yaml.Node, ptr string) {
	switch n.Kind {
	case yaml.MappingNode:
		keys := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			keys = append(keys, key)
			o.walk(n.Content[i+1], ptr+"/"+escapePointer(key))
		}
		o[ptr] = keys
	case yaml.SequenceNode:
		for i, c := range n.Content {
			o.walk(c, ptr+"/"+strconv.Itoa(i))
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			o.walk(n.Alias, ptr)
		}
	}
}

// sorted returns keys in the order declared at the pointer built from
// tokens. Keys the document does not declare there follow in lexical
// order.
func (o keyOrder) sorted(keys []string, tokens ...string) []string {
	rest := make(map[string]bool, len(keys))
	for _, k := range keys {
		rest[k] = true
	}
	out := make([]string, 0, len(keys))
	for _, k := range o[pointer(tokens...)] {
		if rest[k] {
			out = append(out, k)
			delete(rest, k)
		}
	}
	tail := make([]string, 0, len(rest))
	for k := range rest {
		tail = append(tail, k)
	}
	sort.Strings(tail)
	return append(out, tail...)
}

func pointer(tokens ...string) string {
	var b strings.Builder
	b.WriteString("#")
	for _, t := range tokens {
		b.WriteString("/")
		b.WriteString(escapePointer(t))
	}
	return b.String()
}

func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}
