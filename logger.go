/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"strings"
)

// Log is the scrollback shown in the debug panel. The standard logger
// writes to it as well as stderr.
var Log = NewLog(500)

// Logger is a bounded, scrollable log of text lines.
type Logger struct {
	// buf contains each line of logged text.
	buf []string

	// limit is the number of lines kept.
	limit int

	// pos is the line after the last one shown. When it is at the end
	// of the buffer the log follows new lines.
	pos int

	// partial holds a line written without a trailing newline.
	partial string
}

// NewLog creates a new Logger keeping the last limit lines.
func NewLog(limit int) *Logger {
	return &Logger{
		buf:   make([]string, 0, 100),
		limit: limit,
	}
}

// Write implements io.Writer, adding a line per newline written.
func (log *Logger) Write(p []byte) (int, error) {
	lines := strings.Split(log.partial+string(p), "\n")

	// the last element is whatever follows the final newline
	log.partial = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		log.Log(line)
	}

	return len(p), nil
}

// Log outputs a new line to the log.
func (log *Logger) Log(s ...string) {
	follow := log.pos == len(log.buf)

	// add the new line
	log.buf = append(log.buf, strings.Join(s, " "))

	// drop the oldest lines
	if n := len(log.buf) - log.limit; n > 0 {
		log.buf = append(log.buf[:0], log.buf[n:]...)
		log.pos -= n

		if log.pos < 0 {
			log.pos = 0
		}
	}

	if follow {
		log.pos = len(log.buf)
	}
}

// Window returns up to n lines ending at the read position.
func (log *Logger) Window(n int) []string {
	start := log.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	end := start + n
	if end > len(log.buf) {
		end = len(log.buf)
	}

	return log.buf[start:end]
}

// Home scrolls the log to the beginning.
func (log *Logger) Home() {
	log.pos = 0
}

// End scrolls the log to the end and follows new lines.
func (log *Logger) End() {
	log.pos = len(log.buf)
}

// ScrollUp scrolls the log back one line.
func (log *Logger) ScrollUp() {
	log.pos -= 1

	// clamp to home
	if log.pos < 0 {
		log.Home()
	}
}

// ScrollDown scrolls the log forward one line.
func (log *Logger) ScrollDown(windowSize int) {
	log.pos += 1

	// if less than the window size, drop to it
	if log.pos <= windowSize {
		log.pos = windowSize + 1
	}

	// clamp to end
	if log.pos >= len(log.buf) {
		log.End()
	}
}
