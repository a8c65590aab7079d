package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var errEmptyBody = errors.New("empty response body")

type envelope interface {
	validate() error
}

// decodeEnvelope unmarshals body into v and checks that every required key
// was present. Any failure comes back as a *ParseError.
func decodeEnvelope(op string, body []byte, v envelope) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &ParseError{Op: op, Err: errEmptyBody}
	}

	if trimmed[0] == '<' {
		return &ParseError{Op: op, Err: htmlPageError(trimmed)}
	}

	if err := json.Unmarshal(trimmed, v); err != nil {
		return &ParseError{Op: op, Err: err}
	}

	if err := v.validate(); err != nil {
		return &ParseError{Op: op, Err: err}
	}

	return nil
}

// htmlPageError describes an HTML body, which the game's web servers send
// for maintenance and error pages, by its <title>.
func htmlPageError(body []byte) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("unexpected HTML page: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return errors.New("unexpected HTML page")
	}
	return fmt.Errorf("unexpected HTML page %q", title)
}

func missingField(name string) error {
	return fmt.Errorf("missing field `%s`", name)
}

func missingElementField(list string, index int, name string) error {
	return fmt.Errorf("%s[%d]: missing field `%s`", list, index, name)
}
