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

package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrStalledCursor is returned when a page links to a next page without
// carrying any events.
var ErrStalledCursor = errors.New("page has next link but no items")

// Run follows nextUri links from startURI until the last page and writes
// every event to the exporter.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	fetcher Fetcher,
	exporter Exporter,
	startURI string,
	onProgress ProgressFunc,
) (*Result, error) {
	if err := exporter.Open(ctx); err != nil {
		return nil, fmt.Errorf("opening exporter: %w", err)
	}

	defer func() {
		if closeErr := exporter.Close(ctx); closeErr != nil {
			logger.Error("closing exporter", slog.String("error", closeErr.Error()))
		}
	}()

	result := &Result{}
	uri := startURI

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := fetcher(ctx, uri)
		if err != nil {
			return result, fmt.Errorf("fetching page %d: %w", result.Pages+1, err)
		}
		result.Pages++

		for _, event := range page.Items {
			if err := exporter.Write(ctx, event); err != nil {
				return result, fmt.Errorf("writing entry: %w", err)
			}
			result.ExportedEntries++
			result.LastID = event.ID
		}

		if cp, ok := exporter.(Checkpointer); ok {
			if err := cp.Checkpoint(ctx); err != nil {
				return result, fmt.Errorf("checkpointing page %d: %w", result.Pages, err)
			}
		}

		if onProgress != nil {
			onProgress(result.ExportedEntries, result.Pages)
		}

		if page.Paging.NextURI == nil {
			break
		}
		if len(page.Items) == 0 {
			return result, ErrStalledCursor
		}

		logger.Debug(
			"following next page",
			slog.String("next_uri", *page.Paging.NextURI),
			slog.Int("exported", result.ExportedEntries),
		)
		uri = *page.Paging.NextURI
	}

	return result, nil
}
