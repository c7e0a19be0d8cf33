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

package audit_test

import (
	"encoding/binary"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/retr0h/auditlog/internal/audit"
)

// base is the second most test events are recorded at.
var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// idAt builds an identifier recorded at base+sec with a fixed counter so
// tests control the ordering of events within one second.
func idAt(
	sec int,
	counter byte,
) bson.ObjectID {
	var id bson.ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(base.Add(time.Duration(sec)*time.Second).Unix()))
	id[11] = counter

	return id
}

func newEvent(
	id bson.ObjectID,
	domain string,
	user string,
) audit.Event {
	return audit.Event{
		ID:         id,
		Domain:     domain,
		UserLogin:  user,
		OccurredAt: audit.RecordedAt(id),
		IP:         "127.0.0.1",
		Success:    true,
		Type:       "STANDARD_LOGIN",
	}
}

func ids(
	events []audit.Event,
) []bson.ObjectID {
	out := make([]bson.ObjectID, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}

	return out
}

func timePtr(
	t time.Time,
) *time.Time {
	return &t
}

func idPtr(
	id bson.ObjectID,
) *bson.ObjectID {
	return &id
}
