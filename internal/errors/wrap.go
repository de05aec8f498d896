package errors

import "fmt"

// Wrap adds context to an error while keeping it matchable with errors.Is.
// A nil err yields nil, so it is safe to use in return statements:
//
//	return errors.Wrap(repo.Pull(ctx, branch), "update workflow")
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
