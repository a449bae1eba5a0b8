// Package scan implements the byte-streaming substring matcher and its
// parallel fan-out across documents (spec.md §4.4, §9).
//
// Per spec.md §9's redesign guidance, the parallel fan-out uses
// goroutines sharing an atomic work counter and an atomic-word bitmap
// instead of forked processes communicating through mmap — the same
// disjoint-work algorithm, without OS process setup cost.
package scan

import (
	"bufio"
	"io"
)

const chunkSize = 8 * 1024

// CountMatching streams r and counts the number of lines containing term
// as a contiguous substring. An empty term matches nothing (spec.md
// §4.4 "Empty term"). If stopAtFirst is set, CountMatching returns 1 as
// soon as the first matching line completes, without reading the rest
// of r.
func CountMatching(r io.Reader, term string, stopAtFirst bool) (int, error) {
	if len(term) == 0 {
		return 0, nil
	}

	br := bufio.NewReaderSize(r, chunkSize)

	match := 0
	lineMatched := false
	count := 0

	buf := make([]byte, chunkSize)

	for {
		n, err := br.Read(buf)

		for i := 0; i < n; i++ {
			c := buf[i]

			if c == term[match] {
				match++
				if match == len(term) {
					lineMatched = true
					match = 0
				}
			} else if c == term[0] {
				match = 1
			} else {
				match = 0
			}

			if c == '\n' {
				if lineMatched {
					count++
					if stopAtFirst {
						return 1, nil
					}
				}

				lineMatched = false
			}
		}

		if err != nil {
			if err == io.EOF {
				if lineMatched {
					count++
				}

				return count, nil
			}

			return count, err
		}
	}
}

// Contains reports whether r contains at least one line matching term,
// without counting all occurrences.
func Contains(r io.Reader, term string) (bool, error) {
	n, err := CountMatching(r, term, true)
	return n > 0, err
}
