package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records-api/internal/validation"
	appErrors "github.com/noah-isme/student-records-api/pkg/errors"
	"github.com/noah-isme/student-records-api/pkg/response"
)

// pathID parses the int64 path parameter name, writing a 400 and returning false when it
// is not a number.
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, http.StatusBadRequest, "invalid "+name+": "+raw))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into dst, writing a 400 on malformed JSON.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBadRequest.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

// rejectInvalid writes a 400 listing the violations and returns true when there are any.
func rejectInvalid(c *gin.Context, violations validation.Violations) bool {
	if violations.Valid() {
		return false
	}
	response.Error(c, appErrors.WithDetails(appErrors.ErrValidation, violations, violations))
	return true
}

func locationOf(prefix, collection string, id int64) string {
	return prefix + "/" + collection + "/" + strconv.FormatInt(id, 10)
}
