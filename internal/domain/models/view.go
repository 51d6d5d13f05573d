package models

import "time"

type ViewState string

const (
	StateEmpty ViewState = "empty"
	StateError ViewState = "error"
	StateReady ViewState = "ready"
)

const (
	EmptyMessage  = "No data"
	FailedMessage = "데이터를 불러올 수 없습니다"
)

// View is the tagged value handed to renderers: empty, error, or ready with data.
type View[T any] struct {
	State     ViewState `json:"state"`
	Message   string    `json:"message,omitempty"`
	Data      *T        `json:"data,omitempty"`
	Stale     bool      `json:"stale,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

func Ready[T any](data T) View[T] {
	return View[T]{State: StateReady, Data: &data}
}

func Empty[T any]() View[T] {
	return View[T]{State: StateEmpty, Message: EmptyMessage}
}

func Failed[T any](message string) View[T] {
	if message == "" {
		message = FailedMessage
	}
	return View[T]{State: StateError, Message: message}
}

func (v View[T]) IsReady() bool { return v.State == StateReady && v.Data != nil }

// Value returns the payload or the zero value when not ready.
func (v View[T]) Value() T {
	if v.Data == nil {
		var zero T
		return zero
	}
	return *v.Data
}

func (v View[T]) WithStale(stale bool) View[T] {
	v.Stale = stale
	return v
}

func (v View[T]) Stamped(at time.Time) View[T] {
	v.UpdatedAt = at
	return v
}

// Status reports the tag so views of different payload types share StateView.
func (v View[T]) Status() ViewState { return v.State }

// StateView is satisfied by every View[T].
type StateView interface {
	Status() ViewState
}
