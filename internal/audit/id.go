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

package audit

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NewEventID returns a fresh identifier stamped with the current time. Later
// calls in the same process always compare greater.
func NewEventID() bson.ObjectID {
	return bson.NewObjectID()
}

// CompareIDs orders identifiers bytewise, which is creation order at one
// second resolution followed by the process and counter bytes.
func CompareIDs(
	a bson.ObjectID,
	b bson.ObjectID,
) int {
	return bytes.Compare(a[:], b[:])
}

// RecordedAt returns the creation time embedded in the identifier, in UTC.
func RecordedAt(
	id bson.ObjectID,
) time.Time {
	return id.Timestamp().UTC()
}

// ParseEventID parses the canonical 24 character hex form of an identifier.
func ParseEventID(
	s string,
) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(s)
}

// LowerBoundID returns the smallest identifier whose RecordedAt is not before
// t: the second with zeroed process and counter bytes. Identifiers carry
// whole seconds, so a sub-second t rounds up. Times
// outside the identifier's 32-bit seconds range clamp to the lowest or
// highest identifier.
func LowerBoundID(
	t time.Time,
) bson.ObjectID {
	whole := t.Truncate(time.Second)
	if !whole.Equal(t) {
		whole = whole.Add(time.Second)
	}

	switch sec := whole.Unix(); {
	case sec <= 0:
		return bson.NilObjectID
	case sec > math.MaxUint32:
		var highest bson.ObjectID
		for i := range highest {
			highest[i] = 0xff
		}
		return highest
	}

	var id bson.ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(whole.Unix()))

	return id
}
