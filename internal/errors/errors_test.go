package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeDomain, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("move: %w", Domain("cannot move while in battle"))

	if !stderrors.Is(err, New(CodeDomain, "")) {
		t.Error("expected wrapped domain error to match CodeDomain")
	}
	if stderrors.Is(err, New(CodeNotFound, "")) {
		t.Error("domain error should not match CodeNotFound")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(InvalidInput("bad direction %q", "up")); got != CodeInvalidInput {
		t.Errorf("CodeOf(invalid) = %s, want %s", got, CodeInvalidInput)
	}
	if got := CodeOf(stderrors.New("disk on fire")); got != CodeInternal {
		t.Errorf("CodeOf(plain) = %s, want %s", got, CodeInternal)
	}
	if got := CodeOf(nil); got != CodeInternal {
		t.Errorf("CodeOf(nil) = %s, want %s", got, CodeInternal)
	}
}

func TestWrapUnwrapAndMessage(t *testing.T) {
	cause := stderrors.New("database is locked")
	err := Wrap(CodeInternal, "save player", cause)

	if !stderrors.Is(err, cause) {
		t.Error("Wrap should preserve the cause in the chain")
	}
	if err.Error() != "save player: database is locked" {
		t.Errorf("Error() = %q", err.Error())
	}
	if got := Message(err); got != "internal error" {
		t.Errorf("Message(internal) = %q, want generic message", got)
	}
	if got := Message(NotFound("player not found")); got != "player not found" {
		t.Errorf("Message(not found) = %q", got)
	}
}
