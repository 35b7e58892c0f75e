/*
 * remark.go, part of plopmetrics.
 *
 * Copyright 2026 The plopmetrics authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package plop

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMarker is the token that starts a metadata line in PLOP trajectories.
const DefaultMarker = "REMARK"

var tl func(string) string = strings.ToLower

// ParseRemark processes a "REMARK key value" line. The first field (the marker) is
// discarded, the last one is the value, and the ones in between are joined with
// underscores to form the key, which is returned in lower case. So:
//
//	REMARK  L1 Binding Ene    -81.535  => l1_binding_ene, -81.535
//	REMARK  Steps|              626.000 => steps, 626
//
// A trailing '|' in the key is removed. If the line has no key, an empty key is returned.
// The value never fails to parse, see ToNumber.
func ParseRemark(line string) (string, float64) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", 0
	}
	var key string
	if len(parts) > 2 {
		key = strings.Join(parts[1:len(parts)-1], "_")
	}
	key = strings.TrimSuffix(key, "|")
	return tl(key), ToNumber(parts[len(parts)-1])
}

// Normalize turns a metric name as written by a user ("Binding Ene") into
// the corresponding metadata key ("binding_ene").
func Normalize(name string) string {
	return strings.TrimSuffix(tl(strings.Join(strings.Fields(name), "_")), "|")
}

// ToNumber converts s into a number. It tries a float, then an integer,
// and returns 0 if both fail.
func ToNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f
	}
	//1e400 and such. ParseFloat gives the signed infinity.
	if errors.Is(err, strconv.ErrRange) {
		return f
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return float64(i)
	}
	return 0
}

// FormatRemark returns the metadata line "<marker> key value", without
// a newline. The value uses the shortest representation that reads
// back to the same number.
func FormatRemark(marker, key string, value float64) string {
	return fmt.Sprintf("%s %s %s", marker, key, formatValue(value))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
