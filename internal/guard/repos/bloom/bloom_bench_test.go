package bloom

import (
	"fmt"
	"testing"
)

func addresses(n int, prefix string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%064x", prefix, i)
	}
	return out
}

func BenchmarkMightContain(b *testing.B) {
	const n = 1000
	present := addresses(n, "0x")
	absent := addresses(n, "0y")
	bf := NewFactory().Build(present, 0.01)

	for _, tc := range []struct {
		name string
		keys []string
	}{{"present", present}, {"absent", absent}} {
		keys := make([][]byte, len(tc.keys))
		for i, k := range tc.keys {
			keys[i] = []byte(k)
		}
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = bf.MightContain(keys[i%len(keys)])
			}
		})
	}
}
