/*
Package errors implements the error kinds used across the vault.

Reuse the root errors declared in this package. Every error returned by the
policy, ledger, directory and engine packages wraps exactly one of them, so a
client can match on the kind with ErrXyz.Is(err) or read its numeric code with
Code(err), regardless of how much context was added on the way up.

Create errors with ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of failure to attach a stacktrace. Only the innermost wrap records it.

	%s is just the error message
	%+v is the full stack trace
*/
package errors
