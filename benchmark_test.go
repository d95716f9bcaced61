package crs

import (
	"sync"
	"testing"
)

func BenchmarkEquals_Projected(b *testing.B) {
	x, _ := UTM(32, true)
	y, _ := UTM(32, true)
	for _, mode := range allModes {
		b.Run(mode.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if !x.Equals(y, mode) {
					b.Fatal("not equal")
				}
			}
		})
	}
}

func BenchmarkShiftAxisRange_Cached(b *testing.B) {
	WGS84.ShiftAxisRange(PositiveLongitude)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			WGS84.ShiftAxisRange(PositiveLongitude)
		}
	})
}

func BenchmarkShiftAxisRange_Fresh(b *testing.B) {
	for i := 0; i < b.N; i++ {
		c := newTestGeographic(b, "Fresh")
		c.ShiftAxisRange(PositiveLongitude)
	}
}

func BenchmarkRegistry_Lookup(b *testing.B) {
	r := DefaultRegistry()
	var once sync.Once
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, ok := r.Lookup("EPSG:4978"); !ok {
				once.Do(func() { b.Error("missing EPSG:4978") })
			}
		}
	})
}
