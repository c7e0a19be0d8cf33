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

// Package cli provides shared utilities for CLI startup commands.
package cli

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/auditlog/internal/config"
	"github.com/retr0h/auditlog/internal/messaging"
)

// ParseJetstreamStorageType maps "memory"/"file" strings to jetstream.StorageType.
func ParseJetstreamStorageType(
	s string,
) jetstream.StorageType {
	if s == "memory" {
		return jetstream.MemoryStorage
	}

	return jetstream.FileStorage
}

// BuildAuditKVConfig builds a jetstream.KeyValueConfig from audit config
// values. The bucket TTL is the store retention.
func BuildAuditKVConfig(
	namespace string,
	auditCfg config.NATSAudit,
	retention string,
) jetstream.KeyValueConfig {
	auditBucket := messaging.InfraName(namespace, auditCfg.Bucket)
	auditTTL, _ := time.ParseDuration(retention)

	return jetstream.KeyValueConfig{
		Bucket:   auditBucket,
		TTL:      auditTTL,
		MaxBytes: auditCfg.MaxBytes,
		Storage:  ParseJetstreamStorageType(auditCfg.Storage),
		Replicas: auditCfg.Replicas,
	}
}

// BuildIngestStreamConfig builds the stream audit events are published to.
func BuildIngestStreamConfig(
	namespace string,
	streamCfg config.NATSStream,
) jetstream.StreamConfig {
	maxAge, _ := time.ParseDuration(streamCfg.MaxAge)

	return jetstream.StreamConfig{
		Name:     messaging.InfraName(namespace, streamCfg.Name),
		Subjects: []string{messaging.SubjectName(namespace, streamCfg.Subjects)},
		MaxAge:   maxAge,
		MaxMsgs:  streamCfg.MaxMsgs,
		Storage:  ParseJetstreamStorageType(streamCfg.Storage),
		Replicas: streamCfg.Replicas,
	}
}

// BuildIngestConsumerConfig builds the durable consumer that feeds the store.
func BuildIngestConsumerConfig(
	namespace string,
	streamCfg config.NATSStream,
) jetstream.ConsumerConfig {
	ackWait, _ := time.ParseDuration(streamCfg.AckWait)

	return jetstream.ConsumerConfig{
		Durable:       messaging.InfraName(namespace, streamCfg.Consumer),
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       ackWait,
		MaxDeliver:    streamCfg.MaxDeliver,
		FilterSubject: messaging.SubjectName(namespace, streamCfg.Subjects),
	}
}
