package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way the HTTP layer reports it.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindPermission
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

type BusinessError struct {
	Kind   Kind
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

// ErrBusiness is a validation failure identified by code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Validation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func NotFoundErr(code, detail string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Detail: detail}
}

func Conflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func Permission(code string) error {
	return BusinessError{Kind: KindPermission, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ======================================================
// STORAGE
// ======================================================

// StorageError wraps a failed remote-store call. Callers decide whether
// to retry; nothing in this module retries on its own.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err unless it already carries a classification.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	var se *StorageError
	if errors.As(err, &se) {
		return KindStorage
	}
	return 0
}

func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
