/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

// Options are the project wide editor settings.
type Options struct {
	SnapToGrid       bool
	SnapX            float64
	SnapY            float64
	HitThreshold     float64
	MoveMode         MoveMode
	DefaultIsStroked bool
	DefaultIsFilled  bool
	DefaultIsClosed  bool
	DefaultFillRule  FillRule
	TryToConnect     bool
}

// DefaultOptions returns the factory defaults.
func DefaultOptions() *Options {
	return &Options{
		SnapToGrid:       true,
		SnapX:            15,
		SnapY:            15,
		HitThreshold:     7,
		MoveMode:         MovePoint,
		DefaultIsStroked: true,
		DefaultIsFilled:  false,
		DefaultIsClosed:  true,
		DefaultFillRule:  FillEvenOdd,
		TryToConnect:     false,
	}
}
