// Package saxjson is the pluggable lexer collaborator spec.md §1 calls out
// as external to the matching core: it turns a byte stream into the SAX
// event contract (spec.md §6) the core depends on, and nothing else.
//
// Ported from the encoding/json.Decoder token loop in jacoelho/rq's
// internal/jsonpath.Stream (internal/jsonpath/jsonpath.go), trimmed to a
// push-based event emitter instead of a pull-based result iterator: the
// core (internal/surfer) is itself the consumer driving matching off of
// these events, so there is no result channel here, only event delivery.
package saxjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Sink receives the SAX event stream. internal/surfer.Context implements
// this; Emit is agnostic to who is listening.
type Sink interface {
	StartJSON()
	EndJSON()
	StartObject()
	EndObject()
	StartObjectEntry(key string)
	StartArray()
	EndArray()
	Primitive(value any)
}

// Emit decodes r as a single JSON value and delivers the corresponding SAX
// events to sink. Numbers are decoded as json.Number (UseNumber), matching
// the teacher's streaming decoder so large integers and exact decimals
// survive the round trip through a Collector's value builder unscathed.
func Emit(r io.Reader, sink Sink) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	sink.StartJSON()
	defer sink.EndJSON()

	if err := emitValue(dec, sink); err != nil {
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return fmt.Errorf("saxjson: trailing data after top-level value")
		}
		return err
	}
	return nil
}

// emitValue consumes exactly one JSON value (scalar, object, or array) from
// dec and emits it. The caller has already consumed nothing of it; on
// return the value's closing token has been consumed.
func emitValue(dec *json.Decoder, sink Sink) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return emitToken(dec, sink, tok)
}

func emitToken(dec *json.Decoder, sink Sink, tok json.Token) error {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return emitObject(dec, sink)
		case '[':
			return emitArray(dec, sink)
		default:
			return fmt.Errorf("saxjson: unexpected closing delimiter %q", t)
		}
	default:
		sink.Primitive(tok)
		return nil
	}
}

func emitObject(dec *json.Decoder, sink Sink) error {
	sink.StartObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			sink.EndObject()
			return nil
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("saxjson: object key token is not a string: %v", tok)
		}
		sink.StartObjectEntry(key)
		if err := emitValue(dec, sink); err != nil {
			return err
		}
	}
}

func emitArray(dec *json.Decoder, sink Sink) error {
	sink.StartArray()
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			sink.EndArray()
			return nil
		}
		if err := emitToken(dec, sink, tok); err != nil {
			return err
		}
	}
}
