package errs_test

import (
	"context"
	"errors"
	"testing"

	"localstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "ord-17")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "ord-17", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: ord-17", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("store returned null")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "ord-17", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "ord-17", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: ord-17 (cause: store returned null)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("phoneNumber")

		assert.Equal(t, "phoneNumber", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: phoneNumber", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("contains a slash")
		err := errs.NewValueIsInvalidErrorWithCause("phoneNumber", cause)

		assert.Equal(t, "phoneNumber", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: phoneNumber (cause: contains a slash)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("limit", 150, 1, 100)

		assert.Equal(t, "limit", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is limit, min value is 1, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("password")

		assert.Equal(t, "password", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: password", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("blank input")
		err := errs.NewValueIsRequiredErrorWithCause("password", cause)

		assert.Equal(t, "password", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: password (cause: blank input)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestRemoteCallError(t *testing.T) {
	t.Run("NewRemoteCallError", func(t *testing.T) {
		err := errs.NewRemoteCallError("PUT", "/Orders/NewOrders/o1", 503)

		assert.Equal(t, "PUT", err.Method)
		assert.Equal(t, "/Orders/NewOrders/o1", err.Path)
		assert.Equal(t, 503, err.StatusCode)
		assert.Equal(t, "remote call failed: PUT /Orders/NewOrders/o1 returned 503", err.Error())
		assert.Equal(t, errs.ErrRemoteCallFailed, err.Unwrap())
	})

	t.Run("NewRemoteCallErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewRemoteCallErrorWithCause("DELETE", "/Orders/NewOrders/o1", cause)

		assert.Zero(t, err.StatusCode)
		assert.Equal(t, "remote call failed: DELETE /Orders/NewOrders/o1 (cause: connection reset)", err.Error())
		require.ErrorIs(t, err, errs.ErrRemoteCallFailed)
	})

	t.Run("precondition failure unwraps to its own sentinel", func(t *testing.T) {
		err := errs.NewRemoteCallError("PUT", "/Orders/AcceptedOrders/o1", 412)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		require.NotErrorIs(t, err, errs.ErrRemoteCallFailed)
	})

	t.Run("Temporary", func(t *testing.T) {
		assert.True(t, errs.NewRemoteCallError("GET", "/a", 503).Temporary())
		assert.True(t, errs.NewRemoteCallError("GET", "/a", 429).Temporary())
		assert.True(t, errs.NewRemoteCallErrorWithCause("GET", "/a", errors.New("connection reset")).Temporary())
		assert.False(t, errs.NewRemoteCallErrorWithCause("GET", "/a", context.Canceled).Temporary())
		assert.False(t, errs.NewRemoteCallError("PUT", "/a", 412).Temporary())
		assert.False(t, errs.NewRemoteCallError("PUT", "/a", 401).Temporary())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrRemoteCallFailed)
		require.Error(t, errs.ErrPreconditionFailed)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "remote call failed", errs.ErrRemoteCallFailed.Error())
		assert.Equal(t, "precondition failed", errs.ErrPreconditionFailed.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("orderId", "ord-17")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("phoneNumber")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("limit", 150, 1, 100)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("password")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		remoteErr := errs.NewRemoteCallErrorWithCause("GET", "/Accounts/Stores", errors.New("test"))
		require.ErrorIs(t, remoteErr, errs.ErrRemoteCallFailed)
	})
}
