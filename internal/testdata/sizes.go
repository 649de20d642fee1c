package testdata

// RingSize is a named ring size used by benchmarks.
type RingSize struct {
	Name string
	N    int
}

// RingSizes are the ring sizes benchmarked against the smallest supported domain.
var RingSizes = []RingSize{
	{"1", 1},
	{"6", 6},
	{"64", 64},
	{"255", 255},
}
