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

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/retr0h/auditlog/internal/api/common"
	"github.com/retr0h/auditlog/internal/audit"
	"github.com/retr0h/auditlog/internal/audit/dto"
	"github.com/retr0h/auditlog/internal/audit/export"
)

// ListParams are the optional filters of a first-page request.
type ListParams struct {
	From   string
	To     string
	Offset string
	Type   string
	Limit  int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}

	set(audit.ParamFrom, p.From)
	set(audit.ParamTo, p.To)
	set(audit.ParamOffset, p.Offset)
	set(audit.ParamType, p.Type)
	if p.Limit > 0 {
		v.Set(audit.ParamLimit, strconv.Itoa(p.Limit))
	}

	return v
}

// EventsPath returns the listing path for scope.
func EventsPath(
	scope Scope,
) string {
	return "/gdc/audit/" + string(scope) + "/events"
}

// ListAuditEvents fetches the first page of events in scope.
func (c *Client) ListAuditEvents(
	ctx context.Context,
	scope Scope,
	params ListParams,
) (dto.AuditEventsDTO, error) {
	ref := &url.URL{
		Path:     EventsPath(scope),
		RawQuery: params.values().Encode(),
	}

	var page dto.AuditEventsDTO
	if err := c.do(ctx, http.MethodGet, ref, &page); err != nil {
		return dto.AuditEventsDTO{}, err
	}

	return page, nil
}

// FollowAuditEvents fetches the page a nextUri points to.
func (c *Client) FollowAuditEvents(
	ctx context.Context,
	nextURI string,
) (dto.AuditEventsDTO, error) {
	ref, err := url.Parse(nextURI)
	if err != nil {
		return dto.AuditEventsDTO{}, fmt.Errorf("parsing next uri: %w", err)
	}

	var page dto.AuditEventsDTO
	if err := c.do(ctx, http.MethodGet, ref, &page); err != nil {
		return dto.AuditEventsDTO{}, err
	}

	return page, nil
}

// DeleteAuditEvents purges every event of the caller's domain.
func (c *Client) DeleteAuditEvents(
	ctx context.Context,
) error {
	return c.do(ctx, http.MethodDelete, &url.URL{Path: EventsPath(ScopeAdmin)}, nil)
}

// Fetcher walks scope starting with params and following nextUri links.
func (c *Client) Fetcher(
	scope Scope,
	params ListParams,
) export.Fetcher {
	return func(
		ctx context.Context,
		uri string,
	) (dto.AuditEventsDTO, error) {
		if uri == "" {
			return c.ListAuditEvents(ctx, scope, params)
		}
		return c.FollowAuditEvents(ctx, uri)
	}
}

func (c *Client) do(
	ctx context.Context,
	method string,
	ref *url.URL,
	out any,
) error {
	target := c.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func decodeError(
	resp *http.Response,
) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope common.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorClass: envelope.Error.ErrorClass,
		Message:    envelope.Error.Message,
	}
}
