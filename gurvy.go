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

// Package gurvy provides fast finite field and elliptic curve arithmetic
// for pairing-friendly curves used in zero-knowledge proof systems.
package gurvy

// ID represents a unique ID for a curve
type ID uint16

// Supported curves
const (
	UNKNOWN ID = iota
	BLS381
)

func (id ID) String() string {
	switch id {
	case BLS381:
		return "bls381"
	default:
		return "unknown"
	}
}
