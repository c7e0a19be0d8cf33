// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package dto maps audit events to their JSON transport form and builds the
// paging links that let clients walk a result set.
package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/retr0h/auditlog/internal/audit"
)

// AuditEventDTO is the transport form of one event.
type AuditEventDTO struct {
	ID        string            `json:"id"`
	Domain    string            `json:"domain,omitempty"`
	UserLogin string            `json:"userLogin"`
	Occurred  time.Time         `json:"occurred"`
	Recorded  time.Time         `json:"recorded"`
	UserIP    string            `json:"userIp"`
	Success   bool              `json:"success"`
	Type      string            `json:"type"`
	Params    map[string]string `json:"params,omitempty"`
	Links     map[string]string `json:"links,omitempty"`
}

// Paging carries the link to the following page, null on the last page.
type Paging struct {
	NextURI *string `json:"nextUri"`
}

// Links carries the page's own URI.
type Links struct {
	Self string `json:"self"`
}

// AuditEventsDTO is one page of events.
type AuditEventsDTO struct {
	Items  []AuditEventDTO `json:"items"`
	Paging Paging          `json:"paging"`
	Links  Links           `json:"links"`
}

// NewAuditEventDTO converts an event. The recorded time always comes from the
// identifier, never from a stored field.
func NewAuditEventDTO(
	e audit.Event,
) AuditEventDTO {
	return AuditEventDTO{
		ID:        e.ID.Hex(),
		Domain:    e.Domain,
		UserLogin: e.UserLogin,
		Occurred:  e.OccurredAt.UTC(),
		Recorded:  audit.RecordedAt(e.ID),
		UserIP:    e.IP,
		Success:   e.Success,
		Type:      e.Type,
		Params:    e.Params,
		Links:     e.Links,
	}
}

// BuildPage converts a page of events and, when hasMore is set, links to the
// next page. The next link keeps type, to and limit, replaces the offset with
// the last item's identifier and drops from.
func BuildPage(
	baseURI string,
	items []audit.Event,
	hasMore bool,
	params *audit.Request,
) (AuditEventsDTO, error) {
	switch {
	case baseURI == "":
		return AuditEventsDTO{}, fmt.Errorf("%w: baseURI", audit.ErrNilArgument)
	case items == nil:
		return AuditEventsDTO{}, fmt.Errorf("%w: items", audit.ErrNilArgument)
	case params == nil:
		return AuditEventsDTO{}, fmt.Errorf("%w: params", audit.ErrNilArgument)
	case hasMore && len(items) == 0:
		return AuditEventsDTO{}, fmt.Errorf("%w: more pages without items", audit.ErrInvalidQuery)
	}

	page := AuditEventsDTO{
		Items: make([]AuditEventDTO, 0, len(items)),
		Links: Links{Self: baseURI},
	}
	for _, e := range items {
		page.Items = append(page.Items, NewAuditEventDTO(e))
	}

	if hasMore {
		next := NextURI(baseURI, items[len(items)-1], params)
		page.Paging.NextURI = &next
	}

	return page, nil
}

// NextURI builds the link to the page following last. Query keys are written
// in a fixed order so equal inputs give byte-identical links.
func NextURI(
	baseURI string,
	last audit.Event,
	params *audit.Request,
) string {
	query := make([]string, 0, 4)
	if params.Type != "" {
		query = append(query, audit.ParamType+"="+url.QueryEscape(params.Type))
	}
	if params.To != nil {
		query = append(query, audit.ParamTo+"="+url.QueryEscape(audit.FormatTime(*params.To)))
	}
	query = append(query,
		audit.ParamOffset+"="+last.ID.Hex(),
		audit.ParamLimit+"="+strconv.Itoa(params.Limit),
	)

	sep := "?"
	if strings.Contains(baseURI, "?") {
		sep = "&"
	}

	return baseURI + sep + strings.Join(query, "&")
}
