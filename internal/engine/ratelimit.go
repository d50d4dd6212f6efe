package engine

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

const maxBurst = 1 << 20 // 1 MiB

// newBandwidthLimiter caps throughput at bytesPerSec. The burst is at most
// 1 MiB and never above the rate itself.
func newBandwidthLimiter(bytesPerSec int64) *rate.Limiter {
	burst := maxBurst
	if bytesPerSec < int64(burst) {
		burst = int(bytesPerSec)
	}
	return rate.NewLimiter(rate.Limit(bytesPerSec), burst)
}

// limitedReader throttles reads through a shared limiter. Reads are clamped
// to the limiter's burst so WaitN can always be satisfied.
type limitedReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

func newLimitedReader(ctx context.Context, r io.Reader, limiter *rate.Limiter) *limitedReader {
	return &limitedReader{ctx: ctx, r: r, limiter: limiter}
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if burst := lr.limiter.Burst(); burst > 0 && len(p) > burst {
		p = p[:burst]
	}
	n, err := lr.r.Read(p)
	if n > 0 {
		if werr := lr.limiter.WaitN(lr.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
