// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package protocol holds the value objects the coordinator sends to workers
// to describe tables, columns, splits and predicates. Connector specific
// objects are tagged with an @type key naming their connector and are
// decoded by that connector's ConnectorProtocol.
package protocol

import (
	"encoding/json"

	errors "gopkg.in/src-d/go-errors.v1"
)

// TypeKey is the JSON key carrying the kind of a polymorphic object.
const TypeKey = "@type"

var (
	// ErrMissingTypeKey is returned when a polymorphic object has no @type.
	ErrMissingTypeKey = errors.NewKind("missing " + TypeKey + " in %s")

	// ErrUnknownType is returned when no decoder exists for an @type.
	ErrUnknownType = errors.NewKind("unknown %s type %q")

	// ErrMalformedObject is returned when a wire object can't be decoded.
	ErrMalformedObject = errors.NewKind("malformed %s")
)

// ConnectorSplit is a connector specific unit of scan work.
type ConnectorSplit interface {
	Type() string
}

// ColumnHandle is a connector specific column reference.
type ColumnHandle interface {
	Type() string
}

// ConnectorTableHandle is a connector specific table reference.
type ConnectorTableHandle interface {
	Type() string
}

// ConnectorTableLayoutHandle is a connector specific table layout, which
// carries the predicate chosen for a table scan.
type ConnectorTableLayoutHandle interface {
	Type() string
}

// ConnectorProtocol decodes the connector specific wire objects of one
// connector type.
type ConnectorProtocol interface {
	UnmarshalSplit(data []byte) (ConnectorSplit, error)
	UnmarshalColumnHandle(data []byte) (ColumnHandle, error)
	UnmarshalTableHandle(data []byte) (ConnectorTableHandle, error)
	UnmarshalTableLayoutHandle(data []byte) (ConnectorTableLayoutHandle, error)
}

// ProtocolLookup returns the ConnectorProtocol for an @type value.
type ProtocolLookup func(typ string) (ConnectorProtocol, error)

// TableHandle references a table of a catalog together with the layout
// chosen by the planner.
type TableHandle struct {
	ConnectorID          string
	ConnectorHandle      ConnectorTableHandle
	ConnectorTableLayout ConnectorTableLayoutHandle
}

// Split is a unit of scan work of a catalog.
type Split struct {
	ConnectorID    string
	ConnectorSplit ConnectorSplit
}

// SplitContext carries properties of a split decided by the coordinator.
type SplitContext struct {
	Cacheable bool `json:"cacheable"`
}

// TypeOf returns the @type of a raw JSON object.
func TypeOf(data []byte) (string, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return "", ErrMalformedObject.Wrap(err, "object")
	}

	raw, ok := tagged[TypeKey]
	if !ok {
		return "", ErrMissingTypeKey.New(string(data))
	}

	var typ string
	if err := json.Unmarshal(raw, &typ); err != nil {
		return "", ErrMalformedObject.Wrap(err, TypeKey)
	}
	return typ, nil
}

type wireTableHandle struct {
	ConnectorID          string          `json:"connectorId"`
	ConnectorHandle      json.RawMessage `json:"connectorHandle"`
	ConnectorTableLayout json.RawMessage `json:"connectorTableLayout"`
}

// UnmarshalTableHandle decodes a table handle, resolving its connector
// specific parts with the protocol named by their @type.
func UnmarshalTableHandle(data []byte, lookup ProtocolLookup) (TableHandle, error) {
	var w wireTableHandle
	if err := json.Unmarshal(data, &w); err != nil {
		return TableHandle{}, ErrMalformedObject.Wrap(err, "table handle")
	}

	h := TableHandle{ConnectorID: w.ConnectorID}
	if len(w.ConnectorHandle) > 0 && string(w.ConnectorHandle) != "null" {
		p, err := protocolFor(w.ConnectorHandle, lookup)
		if err != nil {
			return TableHandle{}, err
		}
		if h.ConnectorHandle, err = p.UnmarshalTableHandle(w.ConnectorHandle); err != nil {
			return TableHandle{}, err
		}
	}

	if len(w.ConnectorTableLayout) > 0 && string(w.ConnectorTableLayout) != "null" {
		p, err := protocolFor(w.ConnectorTableLayout, lookup)
		if err != nil {
			return TableHandle{}, err
		}
		if h.ConnectorTableLayout, err = p.UnmarshalTableLayoutHandle(w.ConnectorTableLayout); err != nil {
			return TableHandle{}, err
		}
	}

	return h, nil
}

type wireSplit struct {
	ConnectorID    string          `json:"connectorId"`
	ConnectorSplit json.RawMessage `json:"connectorSplit"`
}

// UnmarshalSplit decodes a split, resolving its connector specific part
// with the protocol named by its @type.
func UnmarshalSplit(data []byte, lookup ProtocolLookup) (Split, error) {
	var w wireSplit
	if err := json.Unmarshal(data, &w); err != nil {
		return Split{}, ErrMalformedObject.Wrap(err, "split")
	}

	p, err := protocolFor(w.ConnectorSplit, lookup)
	if err != nil {
		return Split{}, err
	}

	s, err := p.UnmarshalSplit(w.ConnectorSplit)
	if err != nil {
		return Split{}, err
	}
	return Split{ConnectorID: w.ConnectorID, ConnectorSplit: s}, nil
}

// UnmarshalColumnHandle decodes a column handle with the protocol named by
// its @type.
func UnmarshalColumnHandle(data []byte, lookup ProtocolLookup) (ColumnHandle, error) {
	p, err := protocolFor(data, lookup)
	if err != nil {
		return nil, err
	}
	return p.UnmarshalColumnHandle(data)
}

func protocolFor(data []byte, lookup ProtocolLookup) (ConnectorProtocol, error) {
	typ, err := TypeOf(data)
	if err != nil {
		return nil, err
	}
	return lookup(typ)
}
