// Package flock provides cross-platform exclusive file locks.
//
// Exclusive and Unlock are the raw non-blocking primitives. Acquire wraps them
// in a polling loop bounded by a timeout and the caller's context, which is
// what the task store uses to serialize writes to a task file:
//
//	lock, err := flock.Acquire(ctx, path+".lock", flock.DefaultTimeout)
//	if err != nil {
//	    return err
//	}
//	defer lock.Release()
package flock
