// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package records

import "errors"

var (
	ErrEmptyPath      = errors.New("empty input path")
	ErrUnsupportedExt = errors.New("unsupported input extension")
	ErrDecode         = errors.New("input decode error")
)
