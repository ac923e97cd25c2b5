// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package coo

import (
	"errors"
	"fmt"
)

// ErrBadInput is the error returned when a precondition is violated:
// out-of-range dimensions, mismatched buffer lengths, configuration outside
// its allowed range, and so on. Nothing in this package recovers from it;
// the caller must fix the call. Caller-owned buffers are left untouched.
var ErrBadInput = errors.New("bad input")

// badInputf wraps [ErrBadInput] with call-site context.
func badInputf(format string, args ...any) error {
	return fmt.Errorf("coo: %w: "+format, append([]any{ErrBadInput}, args...)...)
}
