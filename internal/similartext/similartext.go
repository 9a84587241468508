// Copyright 2026 Dolthub, Inc.
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

// Package similartext suggests names close to a misspelled one.
package similartext

import (
	"fmt"
	"sort"
	"strings"
)

// distanceForStrings returns the edit distance between source and target.
func distanceForStrings(source, target []rune) int {
	height := len(source) + 1
	width := len(target) + 1
	matrix := make([][]int, 2)

	for i := 0; i < 2; i++ {
		matrix[i] = make([]int, width)
		matrix[i][0] = i
	}
	for j := 1; j < width; j++ {
		matrix[0][j] = j
	}

	for i := 1; i < height; i++ {
		cur := matrix[i%2]
		prev := matrix[(i-1)%2]
		cur[0] = i
		for j := 1; j < width; j++ {
			delCost := prev[j] + 1
			matchSubCost := prev[j-1]
			if source[i-1] != target[j-1] {
				matchSubCost++
			}
			insCost := cur[j-1] + 1
			cur[j] = min(delCost, matchSubCost, insCost)
		}
	}

	return matrix[(height-1)%2][width-1]
}

// maxDistanceIgnored is the largest distance considered a likely typo.
const maxDistanceIgnored = 2

// Find returns a string with suggestions for name(s) in `names`
// similar to the string `src` until a max distance of `maxDistanceIgnored`.
func Find(names []string, src string) string {
	if len(src) == 0 {
		return ""
	}

	minDistance := -1
	matchMap := make(map[int][]string)

	for _, name := range names {
		dist := distanceForStrings([]rune(name), []rune(src))
		if dist > maxDistanceIgnored {
			continue
		}

		if minDistance == -1 || dist <= minDistance {
			minDistance = dist
			matchMap[dist] = append(matchMap[dist], name)
		}
	}

	if len(matchMap) == 0 {
		return ""
	}

	return fmt.Sprintf(", maybe you mean %s?", strings.Join(matchMap[minDistance], " or "))
}

// FindFromMap does the same as Find but taking a map instead
// of a string array as first argument.
func FindFromMap[V any](names map[string]V, src string) string {
	strList := make([]string, 0, len(names))
	for k := range names {
		strList = append(strList, k)
	}
	sort.Strings(strList)

	return Find(strList, src)
}
