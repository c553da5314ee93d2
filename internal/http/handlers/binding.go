package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report json names ("is_premium") rather than Go field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// TrimmedString is a JSON string with surrounding whitespace removed on
// decode, so binding rules see the trimmed value.
type TrimmedString string

func (s *TrimmedString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = TrimmedString(strings.TrimSpace(v))
	return nil
}

// failBind reports a ShouldBindJSON error: rule violations become
// validation_failed on the first offending field, anything else is a
// malformed body.
func failBind(c *gin.Context, err error) {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	fe := ves[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fe.Field() + ": required"
	case "email":
		msg = fe.Field() + ": not a valid email address"
	default:
		msg = fe.Field() + ": failed " + fe.Tag() + " rule"
	}
	failField(c, http.StatusBadRequest, ErrCodeValidation, msg, fe.Field())
}
