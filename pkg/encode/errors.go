// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package encode

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🛑 ErrTerminated reports that the encoder process ended without an exit
// code, e.g. it was killed by a signal.
var ErrTerminated = errors.New("encoder process terminated without an exit code")

// 💥 ExitError reports a non-zero exit status from the encoder process.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("encoder exited with status code %d", e.Code)
}
