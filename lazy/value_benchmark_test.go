package lazy_test

import (
	"testing"

	"github.com/sghaida/delayed/lazy"
)

func benchNew[T any](b *testing.B, producer func() T) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = lazy.New(producer) // construction only, never forced
	}
}

func BenchmarkNew_Int(b *testing.B) {
	benchNew(b, func() int { return 42 })
}

func BenchmarkNew_Slice(b *testing.B) {
	benchNew(b, func() []int { return []int{1, 2, 3} })
}

func BenchmarkForce_First(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v := lazy.New(func() int { return 42 })
		_, _ = v.Force()
	}
}

func BenchmarkForce_Cached(b *testing.B) {
	v := lazy.New(func() int { return 42 })
	_, _ = v.Force()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = v.Force()
	}
}

func BenchmarkForceV2_Cached(b *testing.B) {
	v := lazy.NewV2(func() int { return 42 })
	_ = v.Force()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Force()
	}
}
