package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	pkgid "tamweel-backend/pkg/id"
)

const (
	// provisionalLockTTL bounds how long a crashed handler can block retries
	// of the same request id.
	provisionalLockTTL = 60 * time.Second
	// maxClockSkew is the tolerated gap between Ax-Request-At and server time.
	maxClockSkew = 10 * time.Minute
)

// idempEntry is the redis value for one request id: provisional while the
// handler runs, then the final response kept around for replays.
type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// respRecorder tees the response so the final body can be stored for replay.
type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) {
	r.code = statusCode
	r.w.WriteHeader(statusCode)
}

// idemHeaders is the validated header triple every mutating request carries.
type idemHeaders struct {
	requestID string
	requestAt time.Time
	userID    string
}

// readIdemHeaders validates the triple and returns a client-facing message
// when something is off.
func readIdemHeaders(req *http.Request) (idemHeaders, string) {
	var h idemHeaders

	h.requestID = strings.TrimSpace(req.Header.Get("Ax-Request-Id"))
	if h.requestID == "" {
		return h, "missing Ax-Request-Id"
	}
	if !validReqID(h.requestID) {
		return h, "invalid Ax-Request-Id format"
	}

	at, err := parseAxRequestAt(req.Header.Get("Ax-Request-At"))
	if err != nil {
		return h, err.Error()
	}
	now := nowUTC()
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return h, "Ax-Request-At too skewed"
	}
	h.requestAt = at

	h.userID = strings.TrimSpace(req.Header.Get("Ax-User-Id"))
	if h.userID == "" {
		return h, "missing Ax-User-Id"
	}
	if !pkgid.Valid(h.userID) {
		return h, "invalid Ax-User-Id"
	}
	return h, ""
}

// IdempotencyMiddleware makes ledger mutations safe to retry. The first
// request with a given (route, user, request id) takes a provisional lock in
// redis and runs; a retry with the same body replays the stored response, a
// retry with a different body gets 409.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			hdr, msg := readIdemHeaders(req)
			if msg != "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
			}

			// Buffer the body: it is hashed for conflict detection and the
			// handler still needs to read it.
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(req.Method, c.Path(), hdr.userID, hdr.requestID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			entry := idempEntry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   hdr.requestID,
				RequestAtMS: hdr.requestAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			ok, err := provisionalSet(ctx, rdb, key, entry)
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !ok {
				// The key exists: either a replayable final response or a
				// request still in flight.
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					log.Printf("idempotency: load entry %s failed: %v", key, errLoad)
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]string{"error": "Ax-Request-Id reused with different body"})
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			final := idempEntry{
				InProgress:  false,
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   hdr.requestID,
				RequestAtMS: hdr.requestAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			_ = saveFinal(context.Background(), rdb, key, final, ttl)
			return nil
		}
	}
}
