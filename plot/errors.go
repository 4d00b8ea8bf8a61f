/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package plot

import "errors"

var (
	// ErrNoData is returned when a chart has nothing to draw.
	ErrNoData = errors.New("no data to plot")
	// ErrInvalidChartName is returned when a chart file name is empty or contains a path.
	ErrInvalidChartName = errors.New("invalid chart name")
)
