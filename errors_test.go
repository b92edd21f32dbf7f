package director

import (
	"errors"
	"fmt"
	"testing"
)

func TestMalformedFileErrorMessage(t *testing.T) {
	err := &MalformedFileError{Err: fmt.Errorf("chunk size runs past end of file"), Pos: 128}
	want := `director: malformed file: chunk size runs past end of file (at byte 128)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, err.Err) {
		t.Error("MalformedFileError must unwrap to its underlying Err")
	}
}

func TestMalformedFileErrorNoPos(t *testing.T) {
	err := &MalformedFileError{Err: fmt.Errorf("bad")}
	want := "director: malformed file: bad"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestInvalidMagicErrorMessage(t *testing.T) {
	err := &InvalidMagicError{Want: "RIFX", Got: "JUNK"}
	want := `director: invalid magic: want "RIFX", got "JUNK"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTypeMismatchErrorMessage(t *testing.T) {
	err := &TypeMismatchError{Section: 42, Want: FourCCCast, Got: FourCCSound}
	want := `director: section 42: expected FOURCC "CASt", got "snd "`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestChildParseFailedErrorUnwraps(t *testing.T) {
	inner := errors.New("truncated payload")
	err := &ChildParseFailedError{Section: 7, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("ChildParseFailedError must unwrap to its underlying Err")
	}
	want := "director: child section 7: truncated payload"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
