package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrEmptyVault,
			b:      ErrEmptyVault,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrEmptyVault,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrDelayRegression,
			b:      Wrapf(ErrDelayRegression, "start %d < %d", 1, 2),
			wantIs: true,
		},
		"successful comparison to a double wrapped error": {
			a:      ErrDelayRegression,
			b:      Wrap(Wrap(ErrDelayRegression, "inner"), "outer"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got: %v", got)
			}
		})
	}
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil":               {err: nil, want: 0},
		"root":              {err: ErrSystemPaused, want: 112},
		"wrapped":           {err: ErrInvalidRange.New("from 3 > to 1"), want: 110},
		"stdlib":            {err: fmt.Errorf("boom"), want: 1},
		"wrapped stdlib":    {err: Wrap(fmt.Errorf("boom"), "ctx"), want: 1},
		"pkg errors around": {err: errors.Wrap(ErrNotFound, "x"), want: 3},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrEmptyVault.Code(), "second")
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(ErrBelowPolicyMinimum, "start %d < %d", 10, 20)
	if got, want := err.Error(), "start 10 < 20: delay below policy minimum"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if full := fmt.Sprintf("%+v", err); !strings.Contains(full, "errors_test.go") {
		t.Fatalf("stacktrace missing: %s", full)
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("at the disco")
	}
	if err := run(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}
