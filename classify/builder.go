/*
   Copyright 2025 The DIRPX Authors

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

package classify

import (
	"log/slog"
	"os"

	"dirpx.dev/rejectx"
	"dirpx.dev/rejectx/apis"
	"dirpx.dev/rejectx/code"
)

type kindRule struct {
	kind     rejectx.Kind
	category code.Code
	message  string
}

// builder collects options before New validates and freezes them.
type builder struct {
	logger    *slog.Logger
	observers []apis.Observer

	kindRules []kindRule

	httpOverride map[code.Code]int
	grpcOverride map[code.Code]int
}

func newBuilder() *builder {
	return &builder{
		logger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
		httpOverride: make(map[code.Code]int),
		grpcOverride: make(map[code.Code]int),
	}
}
