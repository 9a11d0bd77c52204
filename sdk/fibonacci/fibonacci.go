// Package fibonacci computes Fibonacci numbers with F(0)=0 and F(1)=1.
package fibonacci

import (
	"context"
	"math/big"
)

// checkEvery is how many additions run between context checks.
const checkEvery = 1 << 12

// Calc returns F(n). It runs in O(n) additions and keeps two accumulators, so
// results past F(93) that overflow uint64 are still exact.
func Calc(n uint64) *big.Int {
	f, _ := CalcContext(context.Background(), n)
	return f
}

// CalcContext is Calc that stops with ctx.Err() once ctx is done.
func CalcContext(ctx context.Context, n uint64) (*big.Int, error) {
	prev, cur := big.NewInt(0), big.NewInt(1)
	if n == 0 {
		return prev, nil
	}
	for i := uint64(1); i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		prev.Add(prev, cur)
		prev, cur = cur, prev
	}
	return cur, nil
}
