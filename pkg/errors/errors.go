package errors

import (
	"errors"
	"fmt"
)

const (
	ErrCodeConfigInvalid   ErrCode = "CONFIG_INVALID"
	ErrCodeOutputExists    ErrCode = "OUTPUT_EXISTS"
	ErrCodeOutputWrite     ErrCode = "OUTPUT_WRITE"
	ErrCodeStoreInvalid    ErrCode = "STORE_INVALID"
	ErrCodeManifestInvalid ErrCode = "MANIFEST_INVALID"
	ErrCodeDigestInvalid   ErrCode = "DIGEST_INVALID"
	ErrCodeInternal        ErrCode = "INTERNAL"
)

type ErrCode string

type ErrorInfo struct {
	Code    ErrCode `json:"code"`
	Message string  `json:"message"`
	Cause   error   `json:"-"`
}

func (e ErrorInfo) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e ErrorInfo) Unwrap() error {
	return e.Cause
}

func IsErrCode(err error, code ErrCode) bool {
	if err == nil {
		return false
	}
	info := ErrorInfo{}
	if errors.As(err, &info) {
		return info.Code == code
	}
	return false
}

func NewConfigInvalidError(path string, err error) ErrorInfo {
	msg := "config invalid"
	if path != "" {
		msg = fmt.Sprintf("config %s invalid", path)
	}
	return ErrorInfo{Code: ErrCodeConfigInvalid, Message: msg, Cause: err}
}

func NewOutputExistsError(path string) ErrorInfo {
	return ErrorInfo{Code: ErrCodeOutputExists, Message: fmt.Sprintf("output %s already exists (no-clobber)", path)}
}

func NewOutputWriteError(path string, err error) ErrorInfo {
	return ErrorInfo{Code: ErrCodeOutputWrite, Message: fmt.Sprintf("write %s", path), Cause: err}
}

func NewStoreInvalidError(dir string, err error) ErrorInfo {
	return ErrorInfo{Code: ErrCodeStoreInvalid, Message: fmt.Sprintf("model store %s", dir), Cause: err}
}

func NewManifestInvalidError(path string, err error) ErrorInfo {
	return ErrorInfo{Code: ErrCodeManifestInvalid, Message: fmt.Sprintf("manifest %s", path), Cause: err}
}

func NewDigestInvalidError(got string) ErrorInfo {
	return ErrorInfo{Code: ErrCodeDigestInvalid, Message: fmt.Sprintf("digest invalid: %s", got)}
}

func NewInternalError(err error) ErrorInfo {
	return ErrorInfo{Code: ErrCodeInternal, Message: err.Error()}
}
