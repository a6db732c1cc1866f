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

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go.felesatra.moe/tracemoe"
	"go.felesatra.moe/tracemoe/codes"
)

func newMeCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show search quota and limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.newClient(cmd)
			if err != nil {
				return err
			}
			m, err := client.Me(cmd.Context())
			if err != nil {
				return describeAPIError(err)
			}
			if jsonOut {
				return writeJSON(cmd, m)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMe(m))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

// describeAPIError replaces raw HTTP errors with the message reported
// by the API.
func describeAPIError(err error) error {
	var he *tracemoe.HTTPError
	if !errors.As(err, &he) {
		return err
	}
	msg := he.Message()
	switch {
	case errors.Is(err, codes.Forbidden):
		return fmt.Errorf("%s (check api.api_key or TRACE_MOE_API_KEY)", msg)
	case tracemoe.IsTemporary(err):
		return fmt.Errorf("%s (try again later)", msg)
	}
	return fmt.Errorf("%s (http %d)", msg, he.StatusCode)
}
