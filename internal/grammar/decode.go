package grammar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformed means the grammar JSON does not follow the tree-sitter
// rule encoding.
var ErrMalformed = errors.New("malformed grammar")

type rawBody struct {
	Type    string            `json:"type"`
	Content json.RawMessage   `json:"content"`
	Members []json.RawMessage `json:"members"`
	Name    string            `json:"name"`
	Value   string            `json:"value"`
}

// DecodeFile reads a tree-sitter grammar.json from disk.
func DecodeFile(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Decode parses a tree-sitter grammar.json. The rules object is walked
// token by token because its document order is the rule order of the
// resulting Grammar; a plain map decode would lose it. Top-level keys
// other than name, rules and extras (word, conflicts, ...) are skipped.
func Decode(r io.Reader) (*Grammar, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	g := &Grammar{}
	var extras []Body
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "name":
			if err := dec.Decode(&g.Name); err != nil {
				return nil, fmt.Errorf("%w: grammar name: %v", ErrMalformed, err)
			}
		case "rules":
			if err := decodeRules(dec, g); err != nil {
				return nil, err
			}
		case "extras":
			var raws []json.RawMessage
			if err := dec.Decode(&raws); err != nil {
				return nil, fmt.Errorf("%w: extras: %v", ErrMalformed, err)
			}
			for _, raw := range raws {
				b, err := decodeBody(raw)
				if err != nil {
					return nil, err
				}
				extras = append(extras, b)
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
			}
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	markExtras(g, extras)
	return g, nil
}

func decodeRules(dec *json.Decoder, g *Grammar) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	seen := make(map[string]struct{})
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return err
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate rule %q", ErrMalformed, name)
		}
		seen[name] = struct{}{}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: rule %q: %v", ErrMalformed, name, err)
		}
		body, err := decodeBody(raw)
		if err != nil {
			return fmt.Errorf("rule %q: %w", name, err)
		}
		g.Rules = append(g.Rules, Rule{Name: name, Body: body})
	}
	return expectDelim(dec, '}')
}

func decodeBody(raw json.RawMessage) (Body, error) {
	var rb rawBody
	if err := json.Unmarshal(raw, &rb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch rb.Type {
	case "REPEAT":
		content, err := requireContent(rb)
		if err != nil {
			return nil, err
		}
		return Repeat{Content: content}, nil
	case "PREC_LEFT":
		content, err := requireContent(rb)
		if err != nil {
			return nil, err
		}
		return PrecLeft{Content: content}, nil
	case "PREC_RIGHT":
		content, err := requireContent(rb)
		if err != nil {
			return nil, err
		}
		return PrecRight{Content: content}, nil
	case "CHOICE", "SEQ":
		members := make([]Body, 0, len(rb.Members))
		for _, m := range rb.Members {
			b, err := decodeBody(m)
			if err != nil {
				return nil, err
			}
			members = append(members, b)
		}
		if rb.Type == "CHOICE" {
			return Choice{Members: members}, nil
		}
		return Seq{Members: members}, nil
	case "SYMBOL":
		return Symbol{Name: rb.Name}, nil
	case "STRING":
		return String{Value: rb.Value}, nil
	case "PATTERN":
		return Pattern{Value: rb.Value}, nil
	case "":
		return nil, fmt.Errorf("%w: rule body without a type tag", ErrMalformed)
	}
	return nil, fmt.Errorf("%w: unsupported rule body type %q", ErrMalformed, rb.Type)
}

func requireContent(rb rawBody) (Body, error) {
	if len(rb.Content) == 0 {
		return nil, fmt.Errorf("%w: %s without content", ErrMalformed, rb.Type)
	}
	return decodeBody(rb.Content)
}

// markExtras flags rules named by SYMBOL entries of the extras list.
// Non-symbol extras (inline whitespace patterns) carry no rule
// reference and are ignored.
func markExtras(g *Grammar, extras []Body) {
	if len(extras) == 0 {
		return
	}
	names := make(map[string]struct{}, len(extras))
	for _, e := range extras {
		if s, ok := e.(Symbol); ok {
			names[s.Name] = struct{}{}
		}
	}
	for i := range g.Rules {
		if _, ok := names[g.Rules[i].Name]; ok {
			g.Rules[i].IsExtra = true
		}
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, found %v", ErrMalformed, want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected object key, found %v", ErrMalformed, tok)
	}
	return s, nil
}
