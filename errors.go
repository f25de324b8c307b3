package effectlog

import (
	"errors"
	"strings"
)

// Err creates an "error" field from err's message. A nil error yields a
// nil value.
func Err(err error) Field {
	return NamedErr("error", err)
}

// NamedErr creates an error field with a custom key.
func NamedErr(key string, err error) Field {
	if err == nil {
		return Field{Key: key, Value: nil}
	}
	return Field{Key: key, Value: err.Error()}
}

// ErrChain expands err into structured fields describing its full cause
// chain: the error itself, the chain outermost -> root, the root cause,
// and a joined human-readable history. A nil error yields no fields.
func ErrChain(err error) []Field {
	if err == nil {
		return nil
	}
	chain, root := buildErrorChain(err)
	fields := []Field{
		Err(err),
		Any("error_chain", chain),
		String("error_root", root),
	}
	if len(chain) > 1 {
		fields = append(fields, String("error_history", joinChain(chain)))
	}
	return fields
}

// buildErrorChain walks an error's cause chain via errors.Unwrap and
// returns the messages outermost -> innermost plus the root message.
// It guards against excessive depth and repeated messages to avoid
// cycles.
func buildErrorChain(err error) (chain []string, root string) {
	const maxDepth = 50
	seen := map[string]bool{}

	for depth := 0; err != nil && depth < maxDepth; depth++ {
		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		err = errors.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	return chain, root
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	return strings.Join(chain, " -> ")
}
