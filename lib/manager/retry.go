package manager

// retryN invokes fn up to retries+1 times and returns the first successful
// result or the error of the final attempt, together with the number of
// attempts made. There is no delay between attempts; this is only safe
// because all retried backend operations are idempotent.
func retryN[T any](retries int, fn func() (T, error)) (result T, attempts int, err error) {
	for attempts = 1; ; attempts++ {
		result, err = fn()
		if err == nil || attempts > retries {
			return result, attempts, err
		}
	}
}
