/*
Copyright © 2020 Marvin

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
package stringutil

import (
	"encoding/json"
	"strings"
	"unsafe"

	"github.com/scylladb/go-set"
	"github.com/scylladb/go-set/strset"
)

// BytesToString used for bytes to string, reduce memory
// https://segmentfault.com/a/1190000037679588
func BytesToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

// WrapScheme adds http or https scheme to the address unless present.
func WrapScheme(s string, https bool) string {
	if s == "" {
		return s
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "http://"), "https://")
	if https {
		return "https://" + s
	}
	return "http://" + s
}

// MarshalIndentJSON returns indented marshal object json
func MarshalIndentJSON(v any) (string, error) {
	jsonStr, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", err
	}
	return BytesToString(jsonStr), nil
}

// StringBuilder used for string builder, and returns string
func StringBuilder(str ...string) string {
	var b strings.Builder
	for _, p := range str {
		b.WriteString(p)
	}
	return b.String() // no copying
}

// StringSplit used for string split, and returns array string
func StringSplit(str string, sep string) []string {
	return strings.Split(str, sep)
}

// StringJoin used for string join, and returns array string
func StringJoin(strs []string, sep string) string {
	return strings.Join(strs, sep)
}

// StringUpper used for string upper, and returns upper string
func StringUpper(str string) string {
	return strings.ToUpper(str)
}

// StringLower used for string lower, and returns lower string
func StringLower(str string) string {
	return strings.ToLower(str)
}

// StringTrimSpace used for string trim space, and returns trim string
func StringTrimSpace(str string) string {
	return strings.TrimSpace(str)
}

// StringItemsFilterDifference used for filter difference items, and returns new array string
func StringItemsFilterDifference(originItems, excludeItems []string) []string {
	s1 := set.NewStringSet()
	for _, t := range originItems {
		s1.Add(t)
	}
	s2 := set.NewStringSet()
	for _, t := range excludeItems {
		s2.Add(t)
	}
	return strset.Difference(s1, s2).List()
}

// IsContainedString used for judge items whether is contained the item, and if it's contained, return true
func IsContainedString(items []string, item string) bool {
	for _, eachItem := range items {
		if eachItem == item {
			return true
		}
	}
	return false
}

// IsContainedStringIgnoreCase used for judge items whether is contained the item ignoring case
func IsContainedStringIgnoreCase(items []string, item string) bool {
	for _, eachItem := range items {
		if strings.EqualFold(eachItem, item) {
			return true
		}
	}
	return false
}

// MarshalJSON used for marshal json, and returns json string
func MarshalJSON(v interface{}) (string, error) {
	marshal, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(marshal), nil
}

// UnmarshalJSON used for unmarshal json string
func UnmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// StripPrecision removes a trailing parenthesized precision/scale qualifier
// from a function or datatype token, `VARCHAR2(100)` becomes `VARCHAR2`.
func StripPrecision(name string) string {
	if idx := strings.Index(name, "("); idx >= 0 {
		return strings.TrimSpace(name[:idx])
	}
	return strings.TrimSpace(name)
}

// PrecisionDigits extracts the digits of a parenthesized precision qualifier,
// `NUMBER(10,2)` returns `10,2`, ok is false when the token carries none.
func PrecisionDigits(name string) (string, bool) {
	open := strings.Index(name, "(")
	if open < 0 {
		return "", false
	}
	closed := strings.LastIndex(name, ")")
	if closed < open {
		return "", false
	}
	return strings.TrimSpace(name[open+1 : closed]), true
}
