// Copyright (C) 2026 Allen Li
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

package tracemoe

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// Me requests the priority, concurrency and quota of the calling
// account.  Requests made to Me do not count towards the quota.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, "me", nil)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: me")
	}
	d, err := c.do(req)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: me")
	}
	m, err := decodeMe(d)
	if err != nil {
		return nil, errors.Wrap(err, "tracemoe: me")
	}
	return m, nil
}
