// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package httpx

import "errors"

var (
	ErrBadOption     = errors.New("invalid load option")
	ErrUnknownSchema = errors.New("unknown schema")
)
