package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// decodeRequest creates a new Req value and populates it from the HTTP
// request. When fromParams is true, the whole struct binds from path,
// query, and form values; otherwise binding follows the struct's shape:
// param tags and an optional Body field, or the entire struct as the body.
func decodeRequest[Req any](r *http.Request, fromParams bool) (*Req, error) {
	req := new(Req)
	t := reflect.TypeFor[Req]()

	if t == reflect.TypeFor[Void]() {
		return req, nil
	}

	if fromParams {
		if err := bindFlattenedParams(req, r); err != nil {
			return nil, err
		}
		return req, nil
	}

	if hasParamTags(t) {
		if err := bindParams(req, r); err != nil {
			return nil, err
		}
		if hasBodyField(t) {
			bodyField := reflect.ValueOf(req).Elem().FieldByName("Body")
			if err := decodeBody(r, bodyField.Addr().Interface()); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrBindBody, err)
			}
		}
		return req, nil
	}

	// Entire struct is the body.
	if err := decodeBody(r, req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBindBody, err)
	}
	return req, nil
}

// hasParamTags reports whether any field carries a param binding tag.
func hasParamTags(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		f := t.Field(i)
		for _, tag := range []string{"path", "query", "header", "cookie"} {
			if f.Tag.Get(tag) != "" {
				return true
			}
		}
	}
	return false
}

// hasBodyField reports whether the struct has a Body field.
func hasBodyField(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	_, ok := t.FieldByName("Body")
	return ok
}

// bindParams binds path, query, header, and cookie values to tagged fields.
func bindParams(target any, r *http.Request) error {
	v := reflect.ValueOf(target).Elem()
	t := v.Type()

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Name == "Body" {
			continue
		}

		field := v.Field(i)

		if name := f.Tag.Get("path"); name != "" {
			if val := r.PathValue(name); val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindPath, name, err)
				}
			}
		}

		if name := f.Tag.Get("query"); name != "" {
			val := r.URL.Query().Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindQuery, name, err)
				}
			}
		}

		if name := f.Tag.Get("header"); name != "" {
			val := r.Header.Get(name)
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindHeader, name, err)
				}
			}
		}

		if name := f.Tag.Get("cookie"); name != "" {
			var val string
			if c, err := r.Cookie(name); err == nil {
				val = c.Value
			}
			if val == "" {
				val = f.Tag.Get("default")
			}
			if val != "" {
				if err := setFieldValue(field, val); err != nil {
					return fmt.Errorf("%w: %s: %w", ErrBindCookie, name, err)
				}
			}
		}
	}

	return nil
}

// bindFlattenedParams binds every exported field from path, query, and form
// values, in that precedence order. Field names come from the path, query,
// or form tag when present, otherwise the lowercased field name. The body
// is never consulted except as POST form data. Structural incompatibility
// (unsupported field kinds) surfaces per field as a binding error.
func bindFlattenedParams(target any, r *http.Request) error {
	v := reflect.ValueOf(target).Elem()
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", ErrBindParams, t)
	}

	query := r.URL.Query()

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := paramName(f)

		val := r.PathValue(name)
		if val == "" {
			val = query.Get(name)
		}
		if val == "" {
			val = r.PostFormValue(name)
		}
		if val == "" {
			val = f.Tag.Get("default")
		}
		if val == "" {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrBindParams, name, err)
		}
	}

	return nil
}

// paramName resolves the flattened-parameter name for a field.
func paramName(f reflect.StructField) string {
	for _, tag := range []string{"path", "query", "form"} {
		if name := f.Tag.Get(tag); name != "" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

// setFieldValue sets a reflect.Value from a string, supporting common types.
func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeFor[time.Duration]() {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	//exhaustive:ignore
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Type())
	}
	return nil
}

// decodeBody decodes the request body as JSON into target.
func decodeBody(r *http.Request, target any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(target)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
