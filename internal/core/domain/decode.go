package domain

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/zerr"
)

// DecodeList decodes a collection laid out as shape. A null payload yields an empty slice.
func DecodeList[T any](body []byte, shape Shape) ([]T, error) {
	out, err := decode[[]T](body, shape)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// DecodeItem decodes a single record laid out as shape.
func DecodeItem[T any](body []byte, shape Shape) (T, error) {
	return decode[T](body, shape)
}

func decode[V any](body []byte, shape Shape) (V, error) {
	var out V

	payload, err := unwrap(body, shape)
	if err != nil {
		return out, err
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		var zero V
		return zero, zerr.Wrap(err, ErrDecodeFailed.Error())
	}
	return out, nil
}

// unwrap returns the raw payload of body according to shape.
func unwrap(body []byte, shape Shape) (json.RawMessage, error) {
	switch shape.Kind {
	case ShapeBare:
		return body, nil

	case ShapeField:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, zerr.Wrap(err, ErrDecodeFailed.Error())
		}
		payload, ok := fields[shape.Field]
		if !ok {
			return nil, zerr.With(ErrDecodeFailed, "missing_field", shape.Field)
		}
		return payload, nil

	default:
		var env Envelope[json.RawMessage]
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, zerr.Wrap(err, ErrDecodeFailed.Error())
		}
		if !env.Success {
			return nil, zerr.Wrap(ErrAPIRejected, env.Message)
		}
		return env.Data, nil
	}
}
