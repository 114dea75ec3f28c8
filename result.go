package sfexplorer

import (
	"encoding/json"
	"errors"
)

// Result holds either a value or an error, never both.
type Result[T any] struct {
	val T
	err error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{val: v}
}

func Err[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("empty error")
	}
	return Result[T]{err: err}
}

// Capture turns a (value, error) pair into a Result. The value is dropped
// when err is set.
func Capture[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

func (r Result[T]) Unwrap() (T, error) {
	return r.val, r.err
}

func (r Result[T]) MustUnwrap() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.val
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := struct {
		Ok  bool   `json:"ok"`
		Val *T     `json:"val,omitempty"`
		Err string `json:"err,omitempty"`
	}{Ok: r.IsOk()}
	if r.IsOk() {
		out.Val = &r.val
	} else {
		out.Err = r.err.Error()
	}
	return json.Marshal(out)
}
