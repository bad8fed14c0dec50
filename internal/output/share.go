package output

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dsablic/codecheck/internal/model"
)

// FallbackOrigin is used when no origin is configured.
const FallbackOrigin = "https://codeaichecker.com"

// SharePath is appended to the origin of every share link.
const SharePath = "/share"

// SharePayload is the subset of a result embedded in a share link.
type SharePayload struct {
	Detection   string `json:"detection"`
	Confidence  int    `json:"confidence"`
	Originality *int   `json:"originality,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// ShareToken encodes the shareable subset of r. It returns "" if the
// payload cannot be encoded.
func ShareToken(r model.ScoringResult, now time.Time) string {
	detection := "Human"
	if r.Classification.IsAI() {
		detection = "AI"
	}
	data, err := json.Marshal(SharePayload{
		Detection:   detection,
		Confidence:  r.Confidence,
		Originality: r.OriginalityScore,
		CreatedAt:   now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if err != nil {
		return ""
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(data))
}

// ShareLink returns "<origin>/share?result=<token>". An empty origin uses
// FallbackOrigin. Any failure returns "" so callers never build a broken link.
func ShareLink(r model.ScoringResult, origin string, now time.Time) string {
	if origin == "" {
		origin = FallbackOrigin
	}
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" || u.RawQuery != "" || u.Fragment != "" || u.ForceQuery {
		return ""
	}

	token := ShareToken(r, now)
	if token == "" {
		return ""
	}
	return strings.TrimRight(origin, "/") + SharePath + "?result=" + token
}

// DecodeShareToken reverses ShareToken. It accepts the escaped token, the
// raw base64 token, or a full share link.
func DecodeShareToken(s string) (SharePayload, error) {
	var p SharePayload

	token := s
	if u, err := url.Parse(s); err == nil && u.Scheme != "" {
		token = u.Query().Get("result")
	} else if strings.Contains(s, "%") {
		unescaped, err := url.QueryUnescape(s)
		if err != nil {
			return p, fmt.Errorf("unescape share token: %w", err)
		}
		token = unescaped
	}
	if token == "" {
		return p, fmt.Errorf("missing result token")
	}

	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return p, fmt.Errorf("decode share token: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse share payload: %w", err)
	}
	return p, nil
}
