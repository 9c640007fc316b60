package recommend

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound             Kind = "NotFound"
	KindMissingClinicalData  Kind = "MissingClinicalData"
	KindMissingReferenceData Kind = "MissingReferenceData"
	KindCatalogExhausted     Kind = "CatalogExhausted"
	KindLookupFailure        Kind = "LookupFailure"
)

// 以 errors.Is 比對種類
var (
	ErrNotFound             = &PipelineError{Kind: KindNotFound}
	ErrMissingClinicalData  = &PipelineError{Kind: KindMissingClinicalData}
	ErrMissingReferenceData = &PipelineError{Kind: KindMissingReferenceData}
	ErrCatalogExhausted     = &PipelineError{Kind: KindCatalogExhausted}
	ErrLookupFailure        = &PipelineError{Kind: KindLookupFailure}
)

// PipelineError 單次產生推薦失敗的原因，整個流程立即中止
type PipelineError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...interface{}) *PipelineError {
	return &PipelineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func lookupError(what string, err error) *PipelineError {
	return &PipelineError{Kind: KindLookupFailure, Message: what, Err: err}
}

// KindOf 取出錯誤種類，非 PipelineError 回傳空字串
func KindOf(err error) Kind {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind
	}
	return ""
}
