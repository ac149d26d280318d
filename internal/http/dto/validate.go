package dto

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"taskmanager/internal/domain"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	SchemaCreateTask     = "create_task.json"
	SchemaUpdateTask     = "update_task.json"
	SchemaCreateCategory = "create_category.json"

	maxBodyBytes  = 1 << 20
	schemaBaseURL = "https://taskmanager.local/schemas/"
)

var ErrMalformedBody = errors.New("malformed request body")

//go:embed schemas/*.json
var schemaFS embed.FS

var schemas = mustCompileSchemas()

// FieldError is a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in one request body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			msgs = append(msgs, f.Message)
			continue
		}
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Decode reads a JSON body, checks it against the named schema and then
// decodes it into dst.
func Decode(r io.Reader, schema string, dst any) error {
	s, ok := schemas[schemaBaseURL+schema]
	if !ok {
		return fmt.Errorf("unknown schema %q", schema)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if err := s.Validate(doc); err != nil {
		return toValidationError(err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return &ValidationError{Fields: []FieldError{{Field: "due_date", Message: err.Error()}}}
		}
		return &ValidationError{Fields: []FieldError{{Message: err.Error()}}}
	}
	return nil
}

func mustCompileSchemas() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		panic(fmt.Sprintf("read schemas: %v", err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			panic(fmt.Sprintf("read schema %s: %v", e.Name(), err))
		}
		name := schemaBaseURL + e.Name()
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			panic(fmt.Sprintf("add schema %s: %v", e.Name(), err))
		}
		names = append(names, name)
	}

	compiled := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		compiled[name] = compiler.MustCompile(name)
	}
	return compiled
}

func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Fields: []FieldError{{Message: err.Error()}}}
	}

	out := &ValidationError{}
	collectFieldErrors(out, ve)
	sort.SliceStable(out.Fields, func(i, j int) bool { return out.Fields[i].Field < out.Fields[j].Field })
	return out
}

func collectFieldErrors(out *ValidationError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		out.Fields = append(out.Fields, FieldError{
			Field:   pointerToField(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectFieldErrors(out, cause)
	}
}

func pointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
