// Package contract holds JSON schemas for the response envelopes and
// checks outgoing bodies against them.
package contract

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Name identifies an envelope schema.
type Name string

const (
	Hello             Name = "hello"
	Echo              Name = "echo"
	AllTypes          Name = "all-types"
	AllParameterTypes Name = "all-parameter-types"
	PathEncoding      Name = "path-encoding"
	QueryEncoding     Name = "query-encoding"
	FormURLEncoded    Name = "form-urlencoded"
	AsyncCallback     Name = "async-callback"
	Error             Name = "error"
)

// Names lists every known envelope schema.
var Names = []Name{
	Hello,
	Echo,
	AllTypes,
	AllParameterTypes,
	PathEncoding,
	QueryEncoding,
	FormURLEncoded,
	AsyncCallback,
	Error,
}

//go:embed schemas/*.json
var schemas embed.FS

var (
	errSchemaNotFound = errors.New("schema not found")

	// ErrViolation is wrapped by errors describing an envelope that does
	// not match its schema.
	ErrViolation = errors.New("contract violation")
)

// Config configures envelope validation.
type Config struct {
	// Validate enables validation of outgoing envelopes.
	Validate bool `conf:"validate"`
}

// Violation lists the schema errors of one envelope.
type Violation struct {
	Name   Name
	Errors []string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrViolation, v.Name, strings.Join(v.Errors, "; "))
}

func (v *Violation) Unwrap() error {
	return ErrViolation
}

// Validator validates envelopes against the embedded schemas.
type Validator struct {
	schemas map[Name]*gojsonschema.Schema
}

// New compiles all embedded schemas.
func New() (*Validator, error) {
	compiled := make(map[Name]*gojsonschema.Schema, len(Names))

	for _, name := range Names {
		data, err := schemas.ReadFile("schemas/" + string(name) + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}

		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}

		compiled[name] = schema
	}

	return &Validator{schemas: compiled}, nil
}

// Validate checks body, as it would be sent on the wire, against the named
// schema. A mismatch is reported as a *Violation.
func (v *Validator) Validate(name Name, body any) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("%w: %s", errSchemaNotFound, name)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate envelope: %w", err)
	}

	if res.Valid() {
		return nil
	}

	violation := &Violation{Name: name}
	for _, e := range res.Errors() {
		violation.Errors = append(violation.Errors, e.String())
	}

	return violation
}
