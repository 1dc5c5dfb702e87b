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

import "errors"

var (
	// ErrNoInverse is returned when inverting the additive identity of a field tower
	ErrNoInverse = errors.New("bls381: no inverse, element is zero")

	// ErrInvalidEncoding is returned on a malformed or wrongly sized byte encoding
	ErrInvalidEncoding = errors.New("bls381: invalid point encoding")

	// ErrPointNotOnCurve is returned when a decoded point does not satisfy the curve equation
	ErrPointNotOnCurve = errors.New("bls381: point is not on the curve")

	// ErrPointNotInSubgroup is returned when a decoded point is on the curve
	// but outside the prime order subgroup
	ErrPointNotInSubgroup = errors.New("bls381: point is not in the r-order subgroup")

	// ErrInvalidPairingInput is returned by the Miller loop on mismatched slice lengths
	ErrInvalidPairingInput = errors.New("bls381: invalid inputs sizes")

	// ErrMismatchedSizes is returned by MultiExp when the point and scalar
	// slices have different lengths
	ErrMismatchedSizes = errors.New("bls381: points and scalars must have the same length")

	// ErrDegeneratePairing is returned by the final exponentiation on a zero input
	ErrDegeneratePairing = errors.New("bls381: final exponentiation of zero")
)
