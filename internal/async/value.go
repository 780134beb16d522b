// Package async provides a generic container for remotely-sourced values.
// Every piece of data fetched from the collaborator API flows through a
// Value so consumers always know how much to trust it.
package async

// State describes the lifecycle position of a remotely-sourced value.
type State int

const (
	// StateIdle means no fetch has been attempted yet.
	StateIdle State = iota
	// StateLoading means a fetch is in flight; Data still holds the
	// previous value, if any (no flash-to-empty).
	StateLoading
	// StateLoaded means Data holds a fresh, trusted value.
	StateLoaded
	// StateError means the last fetch failed; Data retains the last
	// good value and Err carries the failure message.
	StateError
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Value wraps a remotely-sourced value together with its lifecycle state.
// The zero value is usable and equivalent to Idle.
type Value[T any] struct {
	data   T
	state  State
	errMsg string
}

// Wrap constructs a Value in an arbitrary state. Prefer the named
// constructors and transition methods; Wrap exists for tests and for
// restoring a container from parts.
func Wrap[T any](data T, state State, errMsg string) Value[T] {
	return Value[T]{data: data, state: state, errMsg: errMsg}
}

// Idle returns an empty container in the idle state.
func Idle[T any]() Value[T] {
	return Value[T]{state: StateIdle}
}

// Loaded returns a container holding a fresh value.
func Loaded[T any](data T) Value[T] {
	return Value[T]{data: data, state: StateLoaded}
}

// ToLoading transitions to the loading state, preserving current data
// so consumers can keep rendering the last known value.
func (v Value[T]) ToLoading() Value[T] {
	return Value[T]{data: v.data, state: StateLoading}
}

// ToLoaded transitions to the loaded state with a fresh value.
func (v Value[T]) ToLoaded(data T) Value[T] {
	return Value[T]{data: data, state: StateLoaded}
}

// ToError transitions to the error state. The previous data is never
// discarded; a failed refresh keeps showing the last successful value.
func (v Value[T]) ToError(msg string) Value[T] {
	return Value[T]{data: v.data, state: StateError, errMsg: msg}
}

// Data returns the wrapped value regardless of state. Reading stale data
// is explicitly allowed (e.g. showing the last tree while a refresh is
// in flight).
func (v Value[T]) Data() T { return v.data }

// State returns the current lifecycle state.
func (v Value[T]) State() State { return v.state }

// Err returns the retained failure message, empty unless IsError.
func (v Value[T]) Err() string { return v.errMsg }

func (v Value[T]) IsIdle() bool    { return v.state == StateIdle }
func (v Value[T]) IsLoading() bool { return v.state == StateLoading }
func (v Value[T]) IsLoaded() bool  { return v.state == StateLoaded }
func (v Value[T]) IsError() bool   { return v.state == StateError }
