/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cpufeature reports host CPU characteristics used purely as
// tuning knobs for the pure-Go scalar lexer, never as a dispatch point
// for vectorized code paths: a CPU feature probe built on cpuid.CPU.
// Where a SIMD-accelerated parser would use cpuid.CPU.Supports to pick a
// vectorized code path, this pure-Go lexer instead uses cpuid.CPU.Cache
// sizing to size a Token store's initial capacity so a parse of unknown
// length starts with one allocation instead of several doublings.
package cpufeature

import (
	"github.com/klauspost/cpuid/v2"
)

// tokenSize is a rough estimate of one jsontape.Token's footprint, kept
// here so this package does not import the tokenizer package. It is
// an approximation, not the exact size of the struct.
const tokenSize = 64

// Profile summarizes the host characteristics this package turns into
// tuning knobs.
type Profile struct {
	LogicalCores int
	L2CacheBytes int
	HasAVX2      bool
}

// Detect probes the running CPU once. Cheap enough to call per process,
// cpuid.CPU itself is already a package-level singleton populated at
// init time.
func Detect() Profile {
	l2 := cpuid.CPU.Cache.L2
	if l2 <= 0 {
		l2 = 256 << 10
	}
	return Profile{
		LogicalCores: cpuid.CPU.LogicalCores,
		L2CacheBytes: l2,
		HasAVX2:      cpuid.CPU.Supports(cpuid.AVX2),
	}
}

// RecommendedTokenCapacity suggests an initial fixed token-store size
// that comfortably fits within half of L2, so a first parse of unknown
// document size is unlikely to force a doubling reallocation before it
// finishes. Never a correctness requirement: callers are free to ignore
// it and use NewTokens's fully dynamic store instead.
func (p Profile) RecommendedTokenCapacity() int {
	n := (p.L2CacheBytes / 2) / tokenSize
	if n < 64 {
		n = 64
	}
	return n
}
