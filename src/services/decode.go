package services

import (
	"bytes"
	"encoding/json"
)

// jsonObject is a generically parsed JSON object whose fields are checked
// one by one. Unknown keys are ignored; missing, null or mistyped required
// keys become ParseErrors naming the field.
type jsonObject struct {
	stage  Stage
	path   string
	fields map[string]json.RawMessage
}

func parseObject(stage Stage, body []byte) (*jsonObject, error) {
	return parseObjectAt(stage, "", body)
}

func parseObjectAt(stage Stage, path string, data []byte) (*jsonObject, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &ParseError{Stage: stage, Field: path, Err: err}
	}
	// "null" decodes into a nil map
	if fields == nil {
		return nil, &ParseError{Stage: stage, Field: path, Err: ErrNotObject}
	}
	return &jsonObject{stage: stage, path: path, fields: fields}, nil
}

func (o *jsonObject) name(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func (o *jsonObject) raw(key string) (json.RawMessage, error) {
	raw, ok := o.fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, &ParseError{Stage: o.stage, Field: o.name(key), Err: ErrMissingField}
	}
	return raw, nil
}

func (o *jsonObject) decode(key string, v any) error {
	raw, err := o.raw(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ParseError{Stage: o.stage, Field: o.name(key), Err: ErrWrongType}
	}
	return nil
}

func (o *jsonObject) String(key string) (string, error) {
	var s string
	err := o.decode(key, &s)
	return s, err
}

func (o *jsonObject) Float(key string) (float64, error) {
	var f float64
	err := o.decode(key, &f)
	return f, err
}

func (o *jsonObject) Int(key string) (int, error) {
	var i int
	err := o.decode(key, &i)
	return i, err
}

// OptionalString returns the string at key, or "" when absent or not a string
func (o *jsonObject) OptionalString(key string) string {
	raw, ok := o.fields[key]
	if !ok {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func (o *jsonObject) Object(key string) (*jsonObject, error) {
	raw, err := o.raw(key)
	if err != nil {
		return nil, err
	}
	return parseObjectAt(o.stage, o.name(key), raw)
}

// fieldReader reads several fields and keeps the first error,
// so callers check once after the last read.
type fieldReader struct {
	obj *jsonObject
	err error
}

func (r *fieldReader) str(key string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.obj.String(key)
	r.err = err
	return v
}

func (r *fieldReader) number(key string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.obj.Float(key)
	r.err = err
	return v
}

func (r *fieldReader) integer(key string) int {
	if r.err != nil {
		return 0
	}
	v, err := r.obj.Int(key)
	r.err = err
	return v
}
