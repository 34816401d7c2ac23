/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Entry is one byte of a program listing.
type Entry struct {
	Address uint16
	Data    byte
}

// Listing is a program in the text format, one "ADDR DATA" pair per line.
type Listing []Entry

// IsListing reports whether b looks like a text listing rather than a raw
// program image.
func IsListing(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		switch {
		case c == '\n' || c == '\r' || c == '\t' || c == ' ' || c == '#':
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		case c == 'x' || c == 'X':
		default:
			return false
		}
	}
	return bytes.ContainsAny(b, " \t")
}

func parseHex(s string, bits int) (uint64, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, bits)
	return v, err == nil
}

// ParseListing reads a listing. Blank lines and lines starting with '#' are
// skipped. Every error is a *SyntaxError naming the offending line.
func ParseListing(r io.Reader) (Listing, error) {
	var l Listing

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fail := func(err error) (Listing, error) {
			return nil, &SyntaxError{LineNo: lineNo, Line: line, Err: err}
		}

		if len(l) >= MaxProgramSize {
			return fail(ErrProgramTooLarge)
		}

		fields := strings.Fields(trimmed)

		addr, ok := parseHex(fields[0], 16)
		if !ok {
			return fail(ErrInvalidAddress)
		}
		if addr >= uint64(MemorySize) {
			return fail(&AddressError{Addr: int(addr)})
		}
		if addr < uint64(ProgramStartAddress) {
			return fail(ErrAddressTooLow)
		}

		if len(fields) < 2 {
			return fail(ErrMissingData)
		}
		data, ok := parseHex(fields[1], 8)
		if !ok {
			return fail(ErrInvalidData)
		}

		l = append(l, Entry{Address: uint16(addr), Data: byte(data)})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return l, nil
}
