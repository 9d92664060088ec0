package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Every successful response uses the same envelope:
//   {status:"success", status_code:200, message, result?, data?}
// Failures are {message} for plain errors and {errors:[{field:reason}]}
// for validation failures.  Collaborator failures surface as 500 with
// the raw error message; there is no retry anywhere, every failure is
// terminal for the request.

func success(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"status_code": http.StatusOK,
		"message":     message,
	})
}

func successData(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"status_code": http.StatusOK,
		"message":     message,
		"data":        data,
	})
}

func successList(c echo.Context, message string, result int, data any) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"status_code": http.StatusOK,
		"message":     message,
		"result":      result,
		"data":        data,
	})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{"message": message})
}

// fieldError is one entry of a validation error list, e.g.
// {"title": "The title field is required."}.
type fieldError map[string]string

func failValidation(c echo.Context, errs []fieldError) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
}

// NotFoundJSON is Echo's catch-all error handler: unmatched routes and
// stray echo.HTTPErrors are shaped into the standard error envelope.
func NotFoundJSON(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if code == http.StatusNotFound {
			message = "Not found"
		} else if s, ok := he.Message.(string); ok {
			message = s
		}
	}
	_ = fail(c, code, message)
}
