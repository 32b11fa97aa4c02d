// Package openapisource derives form inputs from the request body of an
// OpenAPI 3 operation.
package openapisource

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("openapisource: operation not found")
	// ErrNoRequestBody is returned when the operation has no object request body.
	ErrNoRequestBody = errors.New("openapisource: operation has no request body")
)

var mediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Operation is the located operation and the inputs derived from it.
type Operation struct {
	ID     string
	Method string
	Path   string
	Inputs []form.Input
}

// FromDocument loads data and returns the inputs for operationID.
func FromDocument(ctx context.Context, data []byte, operationID string) ([]form.Input, error) {
	op, err := Find(ctx, data, operationID)
	if err != nil {
		return nil, err
	}
	return op.Inputs, nil
}

// Find loads data and locates operationID. An operation without an explicit
// id is addressed as "<method>:<path>" in lower-case method form.
func Find(ctx context.Context, data []byte, operationID string) (Operation, error) {
	if err := ctx.Err(); err != nil {
		return Operation{}, err
	}
	if len(data) == 0 {
		return Operation{}, errors.New("openapisource: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Operation{}, fmt.Errorf("openapisource: load document: %w", err)
	}
	if doc.Paths == nil {
		return Operation{}, fmt.Errorf("openapisource: %q: %w", operationID, ErrOperationNotFound)
	}

	paths := doc.Paths.Map()
	names := make([]string, 0, len(paths))
	for path := range paths {
		names = append(names, path)
	}
	sort.Strings(names)

	for _, path := range names {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, method := range []string{"GET", "PUT", "POST", "DELETE", "PATCH"} {
			operation := item.GetOperation(method)
			if operation == nil || operationKey(operation, method, path) != operationID {
				continue
			}
			schema := requestSchema(operation.RequestBody)
			if schema == nil {
				return Operation{}, fmt.Errorf("openapisource: %q: %w", operationID, ErrNoRequestBody)
			}
			return Operation{
				ID:     operationID,
				Method: method,
				Path:   path,
				Inputs: inputsFor(schema),
			}, nil
		}
	}
	return Operation{}, fmt.Errorf("openapisource: %q: %w", operationID, ErrOperationNotFound)
}

func operationKey(op *openapi3.Operation, method, path string) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return strings.ToLower(method) + ":" + path
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func inputsFor(schema *openapi3.Schema) []form.Input {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	inputs := make([]form.Input, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		label := prop.Title
		if label == "" {
			label = model.DefaultLabeler(name)
		}
		attrs := attributesFor(prop)
		if required[name] {
			attrs["required"] = true
		}
		inputs = append(inputs, form.Input{Label: label, Attributes: attrs, Slug: name})
	}
	return inputs
}

func attributesFor(prop *openapi3.Schema) model.Attributes {
	attrs := model.Attributes{}

	if len(prop.Enum) > 0 {
		attrs["type"] = string(model.FieldTypeSelect)
		options := make(model.Options, 0, len(prop.Enum))
		for _, value := range prop.Enum {
			s := model.AsString(value)
			options = append(options, model.Option{Value: s, Label: s})
		}
		attrs["options"] = options
		if prop.Default != nil {
			attrs["selected"] = model.AsString(prop.Default)
		}
		addDescription(attrs, prop)
		return attrs
	}

	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		attrs["type"] = string(model.FieldTypeCheckbox)
		attrs["value"] = "1"
		if b, ok := prop.Default.(bool); ok && b {
			attrs["checked"] = true
		}
		return attrs
	case prop.Type.Is(openapi3.TypeInteger), prop.Type.Is(openapi3.TypeNumber):
		attrs["type"] = string(model.FieldTypeNumber)
		if prop.Min != nil {
			attrs["min"] = strconv.FormatFloat(*prop.Min, 'f', -1, 64)
		}
		if prop.Max != nil {
			attrs["max"] = strconv.FormatFloat(*prop.Max, 'f', -1, 64)
		}
		if prop.Type.Is(openapi3.TypeInteger) {
			attrs["step"] = "1"
		}
	default:
		attrs["type"] = textType(prop.Format)
		if prop.MaxLength != nil {
			attrs["maxlength"] = strconv.FormatUint(*prop.MaxLength, 10)
		}
		if prop.Pattern != "" {
			attrs["pattern"] = prop.Pattern
		}
	}
	if prop.Default != nil {
		attrs["value"] = model.AsString(prop.Default)
	}
	addDescription(attrs, prop)
	return attrs
}

func textType(format string) string {
	switch format {
	case "email":
		return string(model.FieldTypeEmail)
	case "uri", "url":
		return string(model.FieldTypeURL)
	case "password":
		return string(model.FieldTypePassword)
	case "date":
		return "date"
	default:
		return string(model.FieldTypeText)
	}
}

func addDescription(attrs model.Attributes, prop *openapi3.Schema) {
	if prop.Description != "" {
		attrs["placeholder"] = prop.Description
	}
}
