package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "retail-sales-api/internal/errors"
	"retail-sales-api/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// ErrorHandlerTestSuite defines the test suite for error handler middleware
type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
}

// TestErrorHandlerTestSuite runs the test suite
func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) newContext(method string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *ErrorHandlerTestSuite) decode(rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	var body apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// TestCustomHTTPErrorHandler_RouteNotFound tests handling of Echo's 404
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_RouteNotFound() {
	c, rec := s.newContext(http.MethodGet)
	c.Set(TraceIDContextKey, "test-trace-id")

	CustomHTTPErrorHandler(echo.ErrNotFound, c)

	s.Equal(http.StatusNotFound, rec.Code)
	body := s.decode(rec)
	s.False(body.Success)
	s.Equal("SYSTEM_005", body.Code)
	s.Equal("Route not found", body.Message)
	s.Equal("test-trace-id", body.TraceID)
}

// TestCustomHTTPErrorHandler_BadRequestKeepsMessage tests that a 400 message becomes a detail
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_BadRequestKeepsMessage() {
	c, rec := s.newContext(http.MethodGet)

	CustomHTTPErrorHandler(echo.NewHTTPError(http.StatusBadRequest, "malformed query string"), c)

	s.Equal(http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	s.Equal("VALIDATION_001", body.Code)
	s.Equal([]string{"malformed query string"}, body.Details)
}

// TestCustomHTTPErrorHandler_GenericError tests handling of generic errors
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_GenericError() {
	c, rec := s.newContext(http.MethodGet)
	c.Set(TraceIDContextKey, "test-trace-id")

	CustomHTTPErrorHandler(errors.New("pq: relation \"transactions\" does not exist"), c)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_001")
	s.Contains(rec.Body.String(), "test-trace-id")
	s.NotContains(rec.Body.String(), "relation")
}

// TestCustomHTTPErrorHandler_WrappedHTTPError tests that wrapped Echo errors keep their status
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_WrappedHTTPError() {
	c, rec := s.newContext(http.MethodGet)

	CustomHTTPErrorHandler(fmt.Errorf("routing: %w", echo.ErrMethodNotAllowed), c)

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.Equal("SYSTEM_007", s.decode(rec).Code)
}

// TestCustomHTTPErrorHandler_ValidationErrors tests validator failures
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_ValidationErrors() {
	type params struct {
		Page  int    `validate:"gte=1"`
		Sort  string `validate:"oneof=asc desc"`
		Query string `validate:"required"`
	}
	err := validator.New().Struct(params{Page: 0, Sort: "up"})
	s.Require().Error(err)

	c, rec := s.newContext(http.MethodGet)
	CustomHTTPErrorHandler(err, c)

	s.Equal(http.StatusBadRequest, rec.Code)
	body := s.decode(rec)
	s.Equal("VALIDATION_001", body.Code)
	s.ElementsMatch([]string{
		"Page: must be greater than or equal to 1",
		"Sort: must be one of: asc desc",
		"Query: is required",
	}, body.Details)
}

func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_CustomTags() {
	type params struct {
		ID      int64    `param:"id" validate:"positive_id"`
		Origins []string `query:"origins" validate:"min=1"`
	}
	err := validation.NewValidator().Struct(params{})
	s.Require().Error(err)

	c, rec := s.newContext(http.MethodGet)
	CustomHTTPErrorHandler(err, c)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.ElementsMatch([]string{
		"id: must be a positive integer",
		"origins: must contain at least 1 item(s)",
	}, s.decode(rec).Details)
}

// TestCustomHTTPErrorHandler_NoTraceID tests error handling without trace ID
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_NoTraceID() {
	c, rec := s.newContext(http.MethodGet)

	CustomHTTPErrorHandler(errors.New("test error"), c)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("unknown", s.decode(rec).TraceID)
}

// TestCustomHTTPErrorHandler_HeadRequest tests that HEAD responses carry no body
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_HeadRequest() {
	c, rec := s.newContext(http.MethodHead)

	CustomHTTPErrorHandler(echo.ErrNotFound, c)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Empty(rec.Body.String())
}

// TestCustomHTTPErrorHandler_CommittedResponse tests that handler doesn't process committed responses
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_CommittedResponse() {
	c, rec := s.newContext(http.MethodGet)

	// Commit the response by writing to it
	_ = c.String(http.StatusOK, "Transaction ID,Date")

	CustomHTTPErrorHandler(errors.New("export interrupted"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Transaction ID,Date", rec.Body.String())
}

// TestMapHTTPStatusToErrorCode_AllStatuses tests error code mapping
func (s *ErrorHandlerTestSuite) TestMapHTTPStatusToErrorCode_AllStatuses() {
	testCases := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, "VALIDATION_001"},
		{http.StatusNotFound, "SYSTEM_005"},
		{http.StatusMethodNotAllowed, "SYSTEM_007"},
		{http.StatusUnprocessableEntity, "VALIDATION_001"},
		{http.StatusTooManyRequests, "SYSTEM_006"},
		{http.StatusInternalServerError, "SYSTEM_001"},
		{http.StatusServiceUnavailable, "SYSTEM_003"},
		{http.StatusTeapot, "SYSTEM_001"},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			c, rec := s.newContext(http.MethodGet)
			c.Set(TraceIDContextKey, "test-trace-id")

			CustomHTTPErrorHandler(echo.NewHTTPError(tc.status), c)

			s.Equal(tc.status, rec.Code)
			s.Contains(rec.Body.String(), tc.expectedCode)
		})
	}
}

// TestCustomHTTPErrorHandler_JSONFormat tests that response is valid JSON
func (s *ErrorHandlerTestSuite) TestCustomHTTPErrorHandler_JSONFormat() {
	c, rec := s.newContext(http.MethodGet)

	CustomHTTPErrorHandler(errors.New("test error"), c)

	s.Contains(rec.Header().Get("Content-Type"), "application/json")
}
