package cache

// Builder can build simulators.
type Builder struct {
	config Config
}

// MakeBuilder creates a builder with a default configuration: a 256-set,
// 4-way cache with 64-byte blocks, write-allocate, write-back, LRU.
func MakeBuilder() Builder {
	return Builder{
		config: Config{
			NumSets:    256,
			WaysPerSet: 4,
			BlockSize:  64,
			WriteMiss:  WriteAllocate,
			WriteHit:   WriteBack,
			Eviction:   LRU,
		},
	}
}

// WithNumSets sets the number of sets of the builder.
func (b Builder) WithNumSets(numSets int) Builder {
	b.config.NumSets = numSets
	return b
}

// WithWaysPerSet sets the associativity of the builder.
func (b Builder) WithWaysPerSet(waysPerSet int) Builder {
	b.config.WaysPerSet = waysPerSet
	return b
}

// WithBlockSize sets the block size, in bytes, of the builder.
func (b Builder) WithBlockSize(blockSize int) Builder {
	b.config.BlockSize = blockSize
	return b
}

// WithWriteMissPolicy sets the write-miss policy of the builder.
func (b Builder) WithWriteMissPolicy(p WriteMissPolicy) Builder {
	b.config.WriteMiss = p
	return b
}

// WithWriteHitPolicy sets the write-hit policy of the builder.
func (b Builder) WithWriteHitPolicy(p WriteHitPolicy) Builder {
	b.config.WriteHit = p
	return b
}

// WithEvictionPolicy sets the eviction policy of the builder.
func (b Builder) WithEvictionPolicy(p EvictionPolicy) Builder {
	b.config.Eviction = p
	return b
}

// Build builds a simulator, validating the accumulated configuration.
func (b Builder) Build() (*Simulator, error) {
	return NewSimulator(b.config)
}
