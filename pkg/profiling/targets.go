package profiling

import (
	"context"
	"time"
)

// RegisterExamples registers the demonstration targets served out of the box.
func RegisterExamples(r *Registry) {
	r.Register("fib_example", TargetFunc(fibonacciExample))
	r.Register("io_example", TargetFunc(ioExample))
	r.Register("my_custom_task", TargetFunc(customTaskExample))
}

// fibonacciExample burns CPU computing fib(20) repeatedly.
func fibonacciExample(context.Context) (any, error) {
	total := 0
	for range 26 {
		total += fib(20)
	}

	return total, nil
}

func fib(n int) int {
	if n <= 1 {
		return n
	}

	return fib(n-1) + fib(n-2)
}

// ioExample simulates short IO waits.
func ioExample(context.Context) (any, error) {
	for range 5 {
		time.Sleep(50 * time.Millisecond)
	}

	return nil, nil
}

// customTaskExample mixes CPU work with simulated IO waits.
func customTaskExample(context.Context) (any, error) {
	total := 0
	for i := range 100_000 {
		total += (i * i) % 97
	}
	for range 5 {
		time.Sleep(20 * time.Millisecond)
	}

	return total, nil
}
