// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// ParseError reports pack text that is not well-formed JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pack is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reason identifies which structural check a pack failed.
type Reason string

const (
	ReasonNotObject          Reason = "not_object"
	ReasonAppTag             Reason = "app_tag"
	ReasonConfigMissing      Reason = "config_missing"
	ReasonArtifactsMissing   Reason = "artifacts_missing"
	ReasonConfigNotObject    Reason = "config_not_object"
	ReasonArtifactsNotObject Reason = "artifacts_not_object"
	ReasonFormatVersion      Reason = "format_version"
	ReasonConfigFields       Reason = "config_fields"
)

// ValidationError reports a well-formed pack with the wrong shape.
type ValidationError struct {
	Reason Reason
	Msg    string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Is matches another *ValidationError with the same Reason, so callers can
// write errors.Is(err, &ValidationError{Reason: ReasonAppTag}).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

// Validate checks the structure of a deserialized pack. Checks run in a
// fixed order and the first failure is returned; every condition is checked
// independently of the others.
func Validate(doc Document) error {
	dec := json.NewDecoder(bytes.NewReader(doc.raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return &ValidationError{Reason: ReasonNotObject, Msg: "Pack is not a JSON object."}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return &ValidationError{Reason: ReasonNotObject, Msg: "Pack is not a JSON object."}
	}

	if tag, _ := obj["app_tag"].(string); tag != AppTag {
		return &ValidationError{Reason: ReasonAppTag, Msg: fmt.Sprintf("Not a %s pack.", AppTag)}
	}

	cfg, hasConfig := obj["config"]
	if !hasConfig {
		return &ValidationError{Reason: ReasonConfigMissing, Msg: "Pack missing required key: config."}
	}
	arts, hasArtifacts := obj["artifacts"]
	if !hasArtifacts {
		return &ValidationError{Reason: ReasonArtifactsMissing, Msg: "Pack missing required key: artifacts."}
	}
	if _, ok := cfg.(map[string]any); !ok {
		return &ValidationError{Reason: ReasonConfigNotObject, Msg: "Pack config must be an object."}
	}
	if _, ok := arts.(map[string]any); !ok {
		return &ValidationError{Reason: ReasonArtifactsNotObject, Msg: "Pack artifacts must be an object."}
	}

	if !validVersion(obj["format_version"]) {
		return &ValidationError{Reason: ReasonFormatVersion, Msg: "Invalid format_version."}
	}
	return nil
}

// validVersion accepts integer literals >= 1 of any size. Fractions and
// exponents such as 1.0 or 1e2, strings, booleans, null and absent values
// are rejected.
func validVersion(v any) bool {
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	if strings.ContainsAny(n.String(), ".eE") {
		return false
	}
	i, ok := new(big.Int).SetString(n.String(), 10)
	if !ok {
		return false
	}
	return i.Sign() > 0
}
