package errors_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := pkgerrors.New("agent", "StartConversation", cause)

	assert.Equal(t, "agent", err.Component)
	assert.Equal(t, "StartConversation", err.Operation)
	assert.Equal(t, 0, err.StatusCode)
	assert.Nil(t, err.Details)
	assert.Equal(t, cause, err.Cause)
}

func TestNew_NilCause(t *testing.T) {
	err := pkgerrors.New("providers", "LoadDotEnv", nil)

	assert.Equal(t, "providers", err.Component)
	assert.Equal(t, "LoadDotEnv", err.Operation)
	assert.Nil(t, err.Cause)
}

func TestError_BasicMessage(t *testing.T) {
	cause := fmt.Errorf("file not found")
	err := pkgerrors.New("billing", "Submit", cause)

	assert.Equal(t, "[billing] Submit: file not found", err.Error())
}

func TestError_NoCause(t *testing.T) {
	err := pkgerrors.New("agent", "Bootstrap", nil)

	assert.Equal(t, "[agent] Bootstrap", err.Error())
}

func TestError_WithStatusCode(t *testing.T) {
	cause := fmt.Errorf("unauthorized")
	err := pkgerrors.New("providers", "StartConversation", cause).WithStatusCode(401)

	assert.Equal(t, "[providers] StartConversation (status 401): unauthorized", err.Error())
}

func TestError_WithStatusCodeNoCause(t *testing.T) {
	err := pkgerrors.New("agent", "ApplyCredential", nil).WithStatusCode(403)

	assert.Equal(t, "[agent] ApplyCredential (status 403)", err.Error())
}

func TestWithStatusCode(t *testing.T) {
	err := pkgerrors.New("agent", "Run", fmt.Errorf("timeout"))
	result := err.WithStatusCode(504)

	// Builder returns same pointer for chaining.
	assert.Same(t, err, result)
	assert.Equal(t, 504, err.StatusCode)
}

func TestWithDetails(t *testing.T) {
	details := map[string]any{
		"agent_id": "ag-123",
		"provider": "mistral",
		"attempts": 1,
	}
	err := pkgerrors.New("agent", "Resolve", fmt.Errorf("failed"))
	result := err.WithDetails(details)

	assert.Same(t, err, result)
	assert.Equal(t, details, err.Details)
}

func TestChainedBuilders(t *testing.T) {
	err := pkgerrors.New("providers", "Render", fmt.Errorf("bad request")).
		WithStatusCode(400).
		WithDetails(map[string]any{"input": "too long"})

	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, map[string]any{"input": "too long"}, err.Details)
	assert.Equal(t, "[providers] Render (status 400): bad request", err.Error())
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := pkgerrors.New("agent", "Resolve", cause)

	assert.Equal(t, cause, err.Unwrap())
}

func TestUnwrap_NilCause(t *testing.T) {
	err := pkgerrors.New("agent", "Resolve", nil)

	assert.Nil(t, err.Unwrap())
}

func TestErrorsIs(t *testing.T) {
	sentinel := fmt.Errorf("sentinel error")
	wrapped := fmt.Errorf("mid-layer: %w", sentinel)
	err := pkgerrors.New("agent", "Normalize", wrapped)

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, wrapped))
}

func TestErrorsAs(t *testing.T) {
	cause := fmt.Errorf("something failed")
	err := pkgerrors.New("billing", "BuildTransaction", cause)

	// Wrap in another error layer to test errors.As unwrapping.
	outer := fmt.Errorf("outer: %w", err)

	var ctxErr *pkgerrors.ContextualError
	require.True(t, errors.As(outer, &ctxErr))
	assert.Equal(t, "billing", ctxErr.Component)
	assert.Equal(t, "BuildTransaction", ctxErr.Operation)
}

func TestErrorInterface(t *testing.T) {
	var err error = pkgerrors.New("agent", "Resolve", nil)
	assert.NotNil(t, err)
	assert.Equal(t, "[agent] Resolve", err.Error())
}

func TestNestedContextualErrors(t *testing.T) {
	inner := pkgerrors.New("providers", "MakeJSONRequest", io.ErrUnexpectedEOF).WithStatusCode(500)
	outer := pkgerrors.New("agent", "Run", inner).WithStatusCode(502)

	assert.Equal(t, "[agent] Run (status 502): [providers] MakeJSONRequest (status 500): unexpected EOF", outer.Error())

	// Unwrap chain works.
	assert.True(t, errors.Is(outer, io.ErrUnexpectedEOF))

	var innerErr *pkgerrors.ContextualError
	require.True(t, errors.As(outer, &innerErr))
	// errors.As finds the first match, which is outer itself.
	assert.Equal(t, "agent", innerErr.Component)
}

func TestZeroStatusCodeOmitted(t *testing.T) {
	err := pkgerrors.New("agent", "Resolve", fmt.Errorf("fail")).WithStatusCode(0)

	assert.Equal(t, "[agent] Resolve: fail", err.Error())
}

func TestDetailsDoNotAffectErrorString(t *testing.T) {
	err := pkgerrors.New("agent", "Resolve", nil).
		WithDetails(map[string]any{"key": "value"})

	// Details are metadata only; they should not appear in the error string.
	assert.Equal(t, "[agent] Resolve", err.Error())
}

func TestKindSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ContextualError
		kind pkgerrors.Kind
	}{
		{"configuration", pkgerrors.Configuration("credentials", "Resolve", "MISTRAL_API_KEY is not set"), pkgerrors.ErrConfiguration},
		{"dependency", pkgerrors.Dependency("mistral", "NewClient", "install it", io.EOF), pkgerrors.ErrDependency},
		{"timeout", pkgerrors.Timeout("bounded", "Run", "timed out (15s)"), pkgerrors.ErrTimeout},
		{"validation", pkgerrors.Validation("billing", "card_number", "Please enter card number"), pkgerrors.ErrValidation},
		{"processing", pkgerrors.Processing("billing", "BuildTransaction", io.ErrUnexpectedEOF), pkgerrors.ErrProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.kind))
			assert.Equal(t, tt.kind, pkgerrors.KindOf(wrapped))

			for _, other := range []pkgerrors.Kind{
				pkgerrors.ErrConfiguration, pkgerrors.ErrDependency, pkgerrors.ErrTimeout,
				pkgerrors.ErrValidation, pkgerrors.ErrProcessing,
			} {
				if other != tt.kind {
					assert.False(t, errors.Is(wrapped, other), "should not match %s", other)
				}
			}
		})
	}
}

func TestMessageAndCauseInErrorString(t *testing.T) {
	err := pkgerrors.Dependency("mistral", "NewClient", "install it with: go get example.com/x", io.EOF)

	assert.Equal(t, "[mistral] NewClient: install it with: go get example.com/x: EOF", err.Error())
	assert.True(t, errors.Is(err, io.EOF))
}

func TestValidationCarriesField(t *testing.T) {
	err := pkgerrors.Validation("billing", "cvv", "Please enter CVV")

	assert.Equal(t, "Validate", err.Operation)
	assert.Equal(t, "cvv", err.Details["field"])
	assert.Equal(t, "[billing] Validate: Please enter CVV", err.Error())
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, pkgerrors.Kind(""), pkgerrors.KindOf(nil))
	assert.Equal(t, pkgerrors.Kind(""), pkgerrors.KindOf(io.EOF))
	assert.Equal(t, pkgerrors.Kind(""), pkgerrors.KindOf(pkgerrors.New("agent", "Run", io.EOF)))
}

func TestKindOf_NestedClassified(t *testing.T) {
	inner := pkgerrors.Timeout("bounded", "Run", "timed out (15s)")
	outer := pkgerrors.New("agent", "StartConversation", inner)

	assert.Equal(t, pkgerrors.ErrTimeout, pkgerrors.KindOf(outer))
	assert.True(t, errors.Is(outer, pkgerrors.ErrTimeout))
}
