package once

// Runner is the contract shared by the once family: Do runs its action
// at most once over the Runner's lifetime, Done reports whether that
// has happened.
type Runner interface {
	Do(func())
	Done() bool
}

var (
	_ Runner = (*Once)(nil)
	_ Runner = (*AtomicOnce)(nil)
	_ Runner = (*RedisOnce)(nil)
)
