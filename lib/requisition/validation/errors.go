package requisitionvalidation

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Code string

const (
	CodeMissingField    Code = "MissingField"
	CodeInvalidDuration Code = "InvalidDuration"
	CodeInvalidValue    Code = "InvalidValue"
)

// ErrIllegalTransition заявка уже рассмотрена либо переход недопустим
var ErrIllegalTransition = errors.New("недопустимый переход статуса заявки")

// Error ошибка проверки данных заявки, Fields - json имена полей
type Error struct {
	Code   Code     `json:"code"`
	Fields []string `json:"fields,omitempty"`
	Reason string   `json:"reason"`
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Reason, strings.Join(e.Fields, ", "))
}

func IsValidationError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
