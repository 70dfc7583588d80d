package gopher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/comp3310/gopherindex/logger"
)

const (
	connectTimeout = 2000 * time.Millisecond
	readTimeout    = 5000 * time.Millisecond
	maxAttempts    = 2
	maxResponseSize = 1 << 20 // 1 MiB, text responses only
)

// Transport is a bounded, retried, timeout-guarded Gopher client. It
// opens a fresh connection per request and guarantees it is closed on
// every exit path, so callers never need a scoped "connect then
// defer disconnect" block of their own.
type Transport struct {
	log logger.Logger
}

// NewTransport builds a Transport holding log. The transport methods
// do not write to it; failures are returned to the caller as errors.
func NewTransport(log logger.Logger) *Transport {
	return &Transport{log: log}
}

// connect dials host:port with a bounded number of attempts and
// exponential backoff between them, per the fixed timeout/retry
// constants in the transport's contract.
func (t *Transport) connect(host string, port int) (net.Conn, error) {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		conn, err := net.DialTimeout("tcp", addr, connectTimeout)
		if err == nil {
			return conn, nil
		}
		lastErr = classifyConnectErr(err)

		if attempt < maxAttempts-1 {
			time.Sleep(time.Duration(1<<attempt) * 100 * time.Millisecond)
		}
	}
	return nil, lastErr
}

func classifyConnectErr(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrConnectTimeout, err)
	}
	if opErr, ok := err.(*net.OpError); ok && opErr.Op == "dial" && strings.Contains(opErr.Err.Error(), "refused") {
		return fmt.Errorf("%w: %v", ErrConnectRefused, err)
	}
	return fmt.Errorf("%w: %v", ErrConnectOther, err)
}

// SendRequest sends selector + CRLF and reads the response as
// UTF-8 lines until EOF, rejoining them with "\n". The read timeout is
// an idle-per-read budget, not a cumulative one: the deadline is reset
// before every underlying read, mirroring Socket.setSoTimeout, so a
// slow-but-steady transfer is never aborted purely for taking longer
// than readTimeout overall. The accumulated line content, not counting
// line terminators or the rejoining "\n"s, is capped at 1 MiB;
// exceeding the cap discards what was read and returns
// ErrResponseTooLarge.
func (t *Transport) SendRequest(host string, port int, selector string) (string, error) {
	conn, err := t.connect(host, port)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(readTimeout)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnectOther, err)
	}
	if _, err := conn.Write([]byte(selector + "\r\n")); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnectOther, err)
	}

	reader := bufio.NewReader(conn)
	var body []byte
	size := 0

	for {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return "", fmt.Errorf("%w: %v", ErrConnectOther, err)
		}

		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			trimmed := strings.TrimRight(line, "\r\n")
			size += len(trimmed)
			if size > maxResponseSize {
				return "", ErrResponseTooLarge
			}
			body = append(body, trimmed...)
			body = append(body, '\n')
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			if isTimeout(err) {
				return "", fmt.Errorf("%w: %v", ErrReadTimeout, err)
			}
			return "", fmt.Errorf("%w: %v", ErrConnectOther, err)
		}
	}

	return string(body), nil
}

// ReadBinary sends selector + CRLF and reads raw bytes to EOF, with no
// size cap. Used for type-9 entries. Like SendRequest, the read
// deadline is reset before every underlying read rather than imposed
// once for the whole transfer, so a large body trickling in slowly but
// steadily is not mistaken for a stalled connection.
func (t *Transport) ReadBinary(host string, port int, selector string) ([]byte, error) {
	conn, err := t.connect(host, port)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(readTimeout)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectOther, err)
	}
	if _, err := conn.Write([]byte(selector + "\r\n")); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectOther, err)
	}

	var data []byte
	buf := make([]byte, 32*1024)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnectOther, err)
		}

		n, err := conn.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			if isTimeout(err) {
				return nil, fmt.Errorf("%w: %v", ErrReadTimeout, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrConnectOther, err)
		}
	}
	return data, nil
}

// Probe performs only the connect phase: success means the remote is
// considered up, any connect-phase error means it's down.
func (t *Transport) Probe(host string, port int) bool {
	conn, err := t.connect(host, port)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
