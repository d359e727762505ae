package schema

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed cart.cue
var cartSchema string

// Kind selects the definition a document is checked against.
type Kind int

const (
	// KindActions is a single action object or a list of actions.
	KindActions Kind = iota
	// KindState is a state document.
	KindState
)

// String returns the kind name used in messages.
func (k Kind) String() string {
	switch k {
	case KindActions:
		return "actions"
	case KindState:
		return "state"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ValidationError is one schema violation.
type ValidationError struct {
	// Path is the dotted location of the offending value, e.g. "0.payload.sku".
	// Empty for document-level problems.
	Path    string `json:"path"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// compiled holds the schema and the context it was built in. Documents are
// built in the same context, which is not safe for concurrent use.
type compiled struct {
	mu      sync.Mutex
	ctx     *cue.Context
	actions cue.Value
	list    cue.Value
	state   cue.Value
}

var (
	schemaOnce sync.Once
	schemaVal  *compiled
	schemaErr  error
)

func load() (*compiled, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(cartSchema, cue.Filename("cart.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compiling cart.cue: %w", err)
			return
		}
		schemaVal = &compiled{
			ctx:     ctx,
			actions: v.LookupPath(cue.ParsePath("#Action")),
			list:    v.LookupPath(cue.ParsePath("#Document")),
			state:   v.LookupPath(cue.ParsePath("#State")),
		}
	})
	return schemaVal, schemaErr
}

// ValidateJSON checks a JSON document of the given kind. A nil result means
// the document is valid. The error return is reserved for failures that
// are not the document's fault, such as a broken embedded schema.
func ValidateJSON(data []byte, kind Kind) ([]ValidationError, error) {
	return validate("document.json", data, kind)
}

// ValidateYAML checks a YAML document of the given kind.
func ValidateYAML(data []byte, kind Kind) ([]ValidationError, error) {
	js, err := YAMLToJSON(data)
	if err != nil {
		return []ValidationError{{Message: err.Error()}}, nil
	}
	return validate("document.yaml", js, kind)
}

// ValidateFile reads and checks path. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func ValidateFile(path string, kind Kind) ([]ValidationError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		return ValidateYAML(data, kind)
	}
	return ValidateJSON(data, kind)
}

func validate(filename string, data []byte, kind Kind) ([]ValidationError, error) {
	s, err := load()
	if err != nil {
		return nil, err
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return []ValidationError{{Message: fmt.Sprintf("invalid JSON: %v", err)}}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return convertErrors(err), nil
	}

	var def cue.Value
	switch kind {
	case KindActions:
		switch doc.IncompleteKind() {
		case cue.ListKind:
			def = s.list
		case cue.StructKind:
			def = s.actions
		default:
			return []ValidationError{{Message: "action document must be an object or a list of objects"}}, nil
		}
	case KindState:
		if doc.IncompleteKind() != cue.StructKind {
			return []ValidationError{{Message: "state document must be an object"}}, nil
		}
		def = s.state
	default:
		return nil, fmt.Errorf("unknown document kind %v", kind)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return convertErrors(err), nil
	}
	return nil, nil
}

// convertErrors flattens a CUE error list into ValidationErrors,
// deduplicating entries that report the same path and message.
func convertErrors(err error) []ValidationError {
	var out []ValidationError
	seen := make(map[string]bool)
	for _, e := range errors.Errors(err) {
		format, args := e.Msg()
		ve := ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		}
		for _, pos := range errors.Positions(e) {
			if pos.Filename() != "cart.cue" && pos.Line() > 0 {
				ve.Line = pos.Line()
				break
			}
		}
		key := ve.Path + "\x00" + ve.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ve)
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Message: err.Error()})
	}
	return out
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
