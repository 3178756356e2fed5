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
	"net/http"

	"dirpx.dev/rejectx/code"
	"google.golang.org/grpc/codes"
)

var defaultHTTP = map[code.Code]int{
	code.NotFound:         http.StatusNotFound,            // No route for the path.
	code.InvalidBody:      http.StatusBadRequest,          // Body failed structural deserialization.
	code.MethodNotAllowed: http.StatusMethodNotAllowed,    // Path exists, method does not.
	code.Internal:         http.StatusInternalServerError, // Store failures and unrecognized signals; never expose details.
}

var defaultGRPC = map[code.Code]codes.Code{
	code.NotFound:         codes.NotFound,
	code.InvalidBody:      codes.InvalidArgument,
	code.MethodNotAllowed: codes.Unimplemented,
	code.Internal:         codes.Internal,
}
