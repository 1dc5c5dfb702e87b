/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bls381

import (
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gurvy/bls381/fr"
	"github.com/consensys/gurvy/logger"
	"golang.org/x/sync/errgroup"
)

// multiExp window size; with c == 8 the chunk digits are exactly the bytes
// of the little-endian scalar encoding
const multiExpC = 8

const multiExpNbChunks = (fr.Bytes*8 + multiExpC - 1) / multiExpC

// MultiExp sets p = sum_i [scalars[i]] points[i] (bucket method) and returns p.
// Chunks are processed in parallel.
func (p *G1Jac) MultiExp(points []G1Affine, scalars []fr.Element) (*G1Jac, error) {
	if len(points) != len(scalars) {
		return nil, ErrMismatchedSizes
	}
	log := logger.Logger().With().
		Str("curve", "bls381").
		Str("group", "g1").
		Int("nbPoints", len(points)).
		Logger()
	start := time.Now()

	digits := scalarDigits(scalars)

	var chunks [multiExpNbChunks]G1Jac
	var g errgroup.Group
	for j := 0; j < multiExpNbChunks; j++ {
		j := j
		g.Go(func() error {
			var buckets [(1 << multiExpC) - 1]G1Jac
			occupied := bitset.New(uint(len(buckets)))
			for i := range buckets {
				buckets[i].Set(&g1Infinity)
			}
			for i := range points {
				d := digits[i][j]
				if d == 0 {
					continue
				}
				buckets[d-1].AddMixed(&points[i])
				occupied.Set(uint(d - 1))
			}

			var runningSum, total G1Jac
			runningSum.Set(&g1Infinity)
			total.Set(&g1Infinity)
			for b := len(buckets) - 1; b >= 0; b-- {
				if occupied.Test(uint(b)) {
					runningSum.AddAssign(&buckets[b])
				}
				total.AddAssign(&runningSum)
			}
			chunks[j].Set(&total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.Set(&chunks[multiExpNbChunks-1])
	for j := multiExpNbChunks - 2; j >= 0; j-- {
		for s := 0; s < multiExpC; s++ {
			p.DoubleAssign()
		}
		p.AddAssign(&chunks[j])
	}

	log.Debug().Dur("took", time.Since(start)).Msg("multiExp g1")
	return p, nil
}

// MultiExp sets p = sum_i [scalars[i]] points[i] (bucket method) and returns p.
// Chunks are processed in parallel.
func (p *G2Jac) MultiExp(points []G2Affine, scalars []fr.Element) (*G2Jac, error) {
	if len(points) != len(scalars) {
		return nil, ErrMismatchedSizes
	}
	log := logger.Logger().With().
		Str("curve", "bls381").
		Str("group", "g2").
		Int("nbPoints", len(points)).
		Logger()
	start := time.Now()

	digits := scalarDigits(scalars)

	var chunks [multiExpNbChunks]G2Jac
	var g errgroup.Group
	for j := 0; j < multiExpNbChunks; j++ {
		j := j
		g.Go(func() error {
			var buckets [(1 << multiExpC) - 1]G2Jac
			occupied := bitset.New(uint(len(buckets)))
			for i := range buckets {
				buckets[i].Set(&g2Infinity)
			}
			for i := range points {
				d := digits[i][j]
				if d == 0 {
					continue
				}
				buckets[d-1].AddMixed(&points[i])
				occupied.Set(uint(d - 1))
			}

			var runningSum, total G2Jac
			runningSum.Set(&g2Infinity)
			total.Set(&g2Infinity)
			for b := len(buckets) - 1; b >= 0; b-- {
				if occupied.Test(uint(b)) {
					runningSum.AddAssign(&buckets[b])
				}
				total.AddAssign(&runningSum)
			}
			chunks[j].Set(&total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.Set(&chunks[multiExpNbChunks-1])
	for j := multiExpNbChunks - 2; j >= 0; j-- {
		for s := 0; s < multiExpC; s++ {
			p.DoubleAssign()
		}
		p.AddAssign(&chunks[j])
	}

	log.Debug().Dur("took", time.Since(start)).Msg("multiExp g2")
	return p, nil
}

// scalarDigits returns, for each scalar, its canonical little-endian bytes;
// byte j is the digit of chunk j
func scalarDigits(scalars []fr.Element) [][fr.Bytes]byte {
	digits := make([][fr.Bytes]byte, len(scalars))
	for i := range scalars {
		digits[i] = scalars[i].Bytes()
	}
	return digits
}
