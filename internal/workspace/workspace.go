// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace holds the session state for one student: the onboarding
// configuration and the artifacts produced by each workflow step.
//
// A Workspace is an explicit handle passed to whoever needs it. It performs
// no locking; callers that share one across goroutines serialise access.
package workspace

import (
	"encoding/json"
	"fmt"

	"github.com/pdiddy/draftwise/pkg/types"
)

// Workspace is the configuration plus artifacts for one session.
// The zero value is an uninitialized workspace; call Initialize before use.
type Workspace struct {
	configured bool
	config     *types.Configuration
	artifacts  types.Artifacts
}

// New returns an initialized, unconfigured workspace.
func New() *Workspace {
	w := &Workspace{}
	w.Initialize()
	return w
}

// Initialize sets the empty defaults if the workspace has no state yet.
// Calling it again never touches existing state.
func (w *Workspace) Initialize() {
	if w.artifacts != nil {
		return
	}
	w.configured = false
	w.config = nil
	w.artifacts = emptyArtifacts()
}

// SetConfig stores cfg and marks the workspace configured. Existing
// artifacts are kept so re-onboarding does not lose work.
func (w *Workspace) SetConfig(cfg types.Configuration) {
	w.Initialize()
	c := cfg
	w.config = &c
	w.configured = true
}

// Reset wipes configuration and artifacts back to the empty defaults.
func (w *Workspace) Reset() {
	w.configured = false
	w.config = nil
	w.artifacts = emptyArtifacts()
}

// Restore overwrites both configuration and artifacts and marks the
// workspace configured. It performs no validation; callers check the
// source (see package pack) first.
func (w *Workspace) Restore(cfg types.Configuration, artifacts types.Artifacts) {
	c := cfg
	w.config = &c
	if artifacts == nil {
		artifacts = types.Artifacts{}
	}
	w.artifacts = artifacts
	w.configured = true
}

// Configured reports whether a configuration is present.
func (w *Workspace) Configured() bool {
	return w.configured && w.config != nil
}

// Config returns a copy of the configuration and whether one is set.
func (w *Workspace) Config() (types.Configuration, bool) {
	if w.config == nil {
		return types.Configuration{}, false
	}
	return *w.config, true
}

// Artifacts returns a deep copy of the artifact map, safe to hand to a
// pack builder or encoder without aliasing live state.
func (w *Workspace) Artifacts() types.Artifacts {
	w.Initialize()
	cp, err := Clone(w.artifacts)
	if err != nil {
		// Values are normalized on the way in, so this only happens when a
		// caller restored non-JSON data.
		out := make(types.Artifacts, len(w.artifacts))
		for k, v := range w.artifacts {
			out[k] = v
		}
		return out
	}
	return cp
}

// Get returns the raw value stored under key.
func (w *Workspace) Get(key string) any {
	w.Initialize()
	return w.artifacts[key]
}

// Set normalizes v to its JSON form and stores it under key. A nil v clears
// the key.
func (w *Workspace) Set(key string, v any) error {
	w.Initialize()
	if v == nil {
		w.artifacts[key] = nil
		return nil
	}
	n, err := normalize(v)
	if err != nil {
		return fmt.Errorf("storing artifact %s: %w", key, err)
	}
	w.artifacts[key] = n
	return nil
}

// Clear sets key back to its empty default.
func (w *Workspace) Clear(key string) {
	w.Initialize()
	if key == types.KeyWriting {
		w.artifacts[key] = map[string]any{}
		return
	}
	w.artifacts[key] = nil
}

// Clone returns a deep copy of artifacts through a JSON round trip.
func Clone(a types.Artifacts) (types.Artifacts, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("copying artifacts: %w", err)
	}
	var out types.Artifacts
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("copying artifacts: %w", err)
	}
	return out, nil
}

func emptyArtifacts() types.Artifacts {
	a := make(types.Artifacts, len(types.ArtifactKeys))
	for _, k := range types.ArtifactKeys {
		a[k] = nil
	}
	a[types.KeyWriting] = map[string]any{}
	return a
}

// normalize converts v to the generic value json.Unmarshal would produce.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decode converts a stored generic value back into T. It reports false when
// the key is empty or the stored shape does not fit T.
func decode[T any](v any) (T, bool) {
	var out T
	if v == nil {
		return out, false
	}
	data, err := json.Marshal(v)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}
