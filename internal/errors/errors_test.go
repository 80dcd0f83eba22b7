package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "class not found",
			expected: "NOT_FOUND: class not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "title is required",
			expected: "INVALID_ARGUMENT: title is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	base := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(base, "failed to save background")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to save background", wrapped.Message)
	s.Assert().ErrorIs(wrapped, wrapped)
	s.Assert().Equal(base, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFound("feat not found").WithMeta("feat_id", "feat_123")
	wrapped := errors.Wrap(base, "failed to load feat")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().True(errors.IsNotFound(wrapped))
	s.Assert().Equal("feat_123", wrapped.Meta["feat_id"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "ignored"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "ignored"))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	base := fmt.Errorf("redis: nil")
	wrapped := errors.WrapWithCode(base, errors.CodeNotFound, "campaign not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestConstructors() {
	testCases := []struct {
		name     string
		build    func() *errors.Error
		expected errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExists("test") }, errors.CodeAlreadyExists},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Unimplemented", func() *errors.Error { return errors.Unimplemented("test") }, errors.CodeUnimplemented},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, tc.build().Code)
		})
	}
}

func (s *ErrorsTestSuite) TestMeta() {
	err := errors.InvalidArgument("bad formula").
		WithMeta("formula", "level *").
		WithMeta("feature_id", "feat_slots_1")

	s.Assert().Equal("level *", errors.GetMeta(err)["formula"])
	s.Assert().Equal("feat_slots_1", errors.GetMeta(err)["feature_id"])
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(errors.NotFound("missing")))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain error")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	s.Assert().Equal("", errors.GetMessage(nil))
	s.Assert().Equal("race not found", errors.GetMessage(errors.NotFound("race not found")))
	s.Assert().Equal("plain error", errors.GetMessage(fmt.Errorf("plain error")))
}

func (s *ErrorsTestSuite) TestHTTPStatusMapping() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeNotFound, 404},
		{errors.CodeAlreadyExists, 409},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}
