package ipc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxLineSize bounds a single request line. Longer lines are discarded up to
// the next newline and answered with MsgInvalidRequest.
const MaxLineSize = 4 << 20

type inbound struct {
	line    []byte
	tooLong bool
}

// Serve reads newline-delimited JSON requests from r and writes one response
// line per request to w. Requests are handled one at a time in arrival order.
// It returns when r is exhausted or ctx is done.
func Serve(ctx context.Context, h *Handler, r io.Reader, w io.Writer) error {
	return serve(ctx, h, r, w, MaxLineSize)
}

func serve(ctx context.Context, h *Handler, r io.Reader, w io.Writer, limit int) error {
	lines := make(chan inbound)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		br := bufio.NewReaderSize(r, 64*1024)
		for {
			line, tooLong, err := readLine(br, limit)
			if len(line) > 0 || tooLong {
				select {
				case lines <- inbound{line: line, tooLong: tooLong}:
				case <-ctx.Done():
					errc <- nil
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				errc <- err
				return
			}
		}
	}()

	enc := json.NewEncoder(w)
	for {
		select {
		case <-ctx.Done():
			return nil
		case in, ok := <-lines:
			if !ok {
				return <-errc
			}

			var resp Response
			if in.tooLong {
				if h.logger != nil {
					h.logger.Warn("ipc request exceeds line limit", "limit", limit)
				}
				resp = fail(MsgInvalidRequest)
			} else {
				line := bytes.TrimSpace(in.line)
				if len(line) == 0 {
					continue
				}
				var req Request
				if err := json.Unmarshal(line, &req); err != nil {
					resp = fail(MsgInvalidRequest)
				} else {
					resp = h.Handle(ctx, req)
				}
			}

			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}

// readLine returns the next line including its newline. A line longer than
// limit is consumed in full but returned empty with tooLong set.
func readLine(br *bufio.Reader, limit int) ([]byte, bool, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, err
	}
}
