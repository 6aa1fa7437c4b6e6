package engine

type Options struct {
	// Depth is used by Search when the limits carry no depth.
	Depth            int
	ProgressMinNodes int64
}

func NewOptions() Options {
	return Options{
		Depth:            3,
		ProgressMinNodes: 10_000,
	}
}
