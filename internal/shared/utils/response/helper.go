package response

import (
	"cinebook/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a core error onto the standard envelope using its kind
// and message catalog entry.
func RespondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	c.JSON(kind.HTTPStatus(), StandardApiResponse{
		Status:     "error",
		StatusCode: kind.HTTPStatus(),
		Message:    apperrors.MessageOf(err),
		Code:       apperrors.CodeOf(err),
	})
}
