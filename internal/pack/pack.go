// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pack serializes a workspace to the portable "project pack" JSON
// document and validates imported packs before they replace live state.
//
// Import is a three-step pipeline: Deserialize (syntax only), Validate
// (shape only), Open (typed decode). Nothing here touches a live workspace;
// callers restore only after Open succeeds.
package pack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pdiddy/draftwise/internal/workspace"
	"github.com/pdiddy/draftwise/pkg/types"
)

const (
	// FormatVersion is the only version ever written. Any integer >= 1 is
	// accepted on import; no migrations exist yet.
	FormatVersion = 1

	// AppTag identifies packs written by this application.
	AppTag = "DraftWise"

	// DefaultFileName is the export file name convention.
	DefaultFileName = "draftwise_project_pack.json"
)

// now is the clock used to stamp packs. Tests override it.
var now = func() time.Time { return time.Now().UTC() }

// Pack is a value snapshot of a workspace. An imported FormatVersion too
// large for int is held as math.MaxInt.
type Pack struct {
	FormatVersion int                 `json:"format_version"`
	CreatedAt     string              `json:"created_at"`
	AppTag        string              `json:"app_tag"`
	Config        types.Configuration `json:"config"`
	Artifacts     types.Artifacts     `json:"artifacts"`
}

// Build stamps a new pack with the current UTC time. Artifacts are deep
// copied, so later changes to the caller's map never reach the pack. The
// artifacts must already be JSON-safe; a value that cannot be encoded
// surfaces as an error from Serialize.
func Build(cfg types.Configuration, artifacts types.Artifacts) Pack {
	cp, err := workspace.Clone(artifacts)
	if err != nil {
		cp = artifacts
	}
	if cp == nil {
		cp = types.Artifacts{}
	}
	return Pack{
		FormatVersion: FormatVersion,
		CreatedAt:     now().Format(time.RFC3339Nano),
		AppTag:        AppTag,
		Config:        cfg,
		Artifacts:     cp,
	}
}

// FromWorkspace builds a pack from a configured workspace.
func FromWorkspace(w *workspace.Workspace) (Pack, error) {
	cfg, ok := w.Config()
	if !ok {
		return Pack{}, fmt.Errorf("workspace is not configured; nothing to export")
	}
	return Build(cfg, w.Artifacts()), nil
}

// Serialize renders the pack as indented UTF-8 JSON. Non-ASCII text and
// HTML characters are written as-is rather than escaped.
func Serialize(p Pack) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", fmt.Errorf("serializing pack: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Document is well-formed JSON that has not been shape-checked yet.
type Document struct {
	raw []byte
}

// Deserialize checks that text is well-formed JSON. It does not look at the
// shape; see Validate.
func Deserialize(text string) (Document, error) {
	raw := []byte(text)
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Document{}, &ParseError{Err: err}
	}
	return Document{raw: raw}, nil
}

// Open validates doc and decodes it into a typed pack.
func Open(doc Document) (*Pack, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	var wire struct {
		FormatVersion json.Number     `json:"format_version"`
		CreatedAt     any             `json:"created_at"`
		AppTag        string          `json:"app_tag"`
		Config        json.RawMessage `json:"config"`
		Artifacts     types.Artifacts `json:"artifacts"`
	}
	if err := json.Unmarshal(doc.raw, &wire); err != nil {
		return nil, &ValidationError{Reason: ReasonConfigFields, Msg: fmt.Sprintf("decoding pack: %v", err)}
	}
	var cfg types.Configuration
	if err := json.Unmarshal(wire.Config, &cfg); err != nil {
		return nil, &ValidationError{Reason: ReasonConfigFields, Msg: fmt.Sprintf("config fields have the wrong types: %v", err)}
	}
	created, _ := wire.CreatedAt.(string)
	version, err := strconv.Atoi(wire.FormatVersion.String())
	if err != nil {
		version = math.MaxInt
	}
	return &Pack{
		FormatVersion: version,
		CreatedAt:     created,
		AppTag:        wire.AppTag,
		Config:        cfg,
		Artifacts:     wire.Artifacts,
	}, nil
}

// Import runs the full pipeline on text and, only when every step succeeds,
// restores the result into w. On error w is left untouched.
func Import(w *workspace.Workspace, text string) (*Pack, error) {
	doc, err := Deserialize(text)
	if err != nil {
		return nil, err
	}
	p, err := Open(doc)
	if err != nil {
		return nil, err
	}
	w.Restore(p.Config, p.Artifacts)
	return p, nil
}

// ReadFile loads and opens a pack file.
func ReadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pack %s: %w", path, err)
	}
	doc, err := Deserialize(string(data))
	if err != nil {
		return nil, err
	}
	return Open(doc)
}

// WriteFile serializes p to path, replacing the file atomically.
func WriteFile(path string, p Pack) error {
	text, err := Serialize(p)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing pack: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing pack: %w", err)
	}
	return nil
}
