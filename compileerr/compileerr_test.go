package compileerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorFormatsPosition(t *testing.T) {
	err := NewParseError(Pos{Line: 3, Column: 5}, "unexpected %q", "}")
	require.Equal(t, `3:5: unexpected "}"`, err.Error())
}

func TestParseErrorWithoutPosition(t *testing.T) {
	err := NewParseError(Pos{}, "eof")
	require.Equal(t, "eof", err.Error())
}

func TestBadCallUnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := WrapBadCall(Pos{Line: 1, Column: 1}, cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "boom")
}

func TestWrapBadCallNilCauseIsNil(t *testing.T) {
	require.Nil(t, WrapBadCall(Pos{}, nil))
}

func TestBadCallIncludesDeclPos(t *testing.T) {
	err := NewBadCallAt(Pos{Line: 5, Column: 1}, Pos{Line: 1, Column: 1}, "wrong argument count")
	require.Contains(t, err.Error(), "declared at 1:1")
}

func TestInvalidKindMessages(t *testing.T) {
	err := NewInvalid(MixinInMixin, Pos{Line: 2, Column: 3})
	require.Equal(t, "2:3: mixin declared inside a mixin body", err.Error())
}

func TestAtErrorUsesPayload(t *testing.T) {
	err := NewAtError(Pos{Line: 1, Column: 1}, "something went wrong")
	require.Equal(t, "1:1: something went wrong", err.Error())
}

func TestUnitErrorMessage(t *testing.T) {
	err := NewUnitError(Pos{Line: 1, Column: 1}, "px", "%", "cannot add")
	require.Equal(t, `1:1: incompatible units "px" and "%": cannot add`, err.Error())
}

func TestIOErrorWrapsCause(t *testing.T) {
	cause := errors.New("no such file")
	err := NewIOError("missing.sss", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), `"missing.sss"`)
}

func TestIOErrorWithoutCause(t *testing.T) {
	err := NewIOError("missing.sss", nil)
	require.Equal(t, `can't find stylesheet "missing.sss"`, err.Error())
}
