/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package plot

import "github.com/humaidq/checkup/logging"

var logger = logging.Logger(logging.SourcePlot)
