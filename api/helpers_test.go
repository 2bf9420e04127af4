package api_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	. "github.com/onsi/gomega"

	"github.com/labnet/testledger/test"
)

func prepareRequest(method, endpoint string, fixturePath string) *http.Request {
	var body io.Reader
	if fixturePath != "" {
		b, err := test.LoadFixture(fixturePath)
		Expect(err).ToNot(HaveOccurred())
		body = bytes.NewReader(b)
	}

	return newRequest(method, endpoint, body)
}

func prepareRequestWithBody(method, endpoint string, body string) *http.Request {
	return newRequest(method, endpoint, strings.NewReader(body))
}

func newRequest(method, endpoint string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, endpoint, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
