package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func CustomHTTPErrorHandler(err error, c echo.Context) {
	e := HttpError{}
	if errors.As(err, &e) {
		c.Echo().DefaultHTTPErrorHandler(echo.NewHTTPError(e.Code, err.Error()), c)
		return
	}

	he := &echo.HTTPError{}
	if errors.As(err, &he) {
		c.Echo().DefaultHTTPErrorHandler(he, c)
		return
	}

	c.Logger().Error(err)
	c.Echo().DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError, InternalServerError.Error()), c)
}
