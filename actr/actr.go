// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

// Package actr is the runtime surface used by generated dispatch code.
//
// The actor runtime itself (lifecycle, transport, discovery) is reached only
// through the Context interface.
package actr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActrType names a class of remote actor.
type ActrType struct {
	Manufacturer string `json:"manufacturer"`
	Name         string `json:"name"`
}

// ParseActrType parses "<manufacturer>+<name>". The manufacturer is the text
// before the first '+'; everything after it, including any further '+'
// characters, is the name. A string without '+' is not an actor type.
func ParseActrType(s string) (ActrType, bool) {
	manufacturer, name, ok := strings.Cut(s, "+")
	if !ok {
		return ActrType{}, false
	}
	return ActrType{Manufacturer: manufacturer, Name: name}, true
}

func (t ActrType) String() string {
	return t.Manufacturer + "+" + t.Name
}

type Realm struct {
	RealmID uint32 `json:"realm_id"`
}

// ActrID identifies one live actor instance.
type ActrID struct {
	Realm        Realm    `json:"realm"`
	SerialNumber uint64   `json:"serial_number"`
	Type         ActrType `json:"type"`
}

func (id ActrID) String() string {
	return fmt.Sprintf("%s@%d:%d", id.Type, id.Realm.RealmID, id.SerialNumber)
}

type PayloadType uint8

const (
	PayloadRPCReliable PayloadType = iota
	PayloadRPCSignal
	PayloadStreamReliable
	PayloadStreamLatencyFirst
	PayloadMediaRTP
)

var payloadTypeNames = [...]string{
	PayloadRPCReliable:        "RPC_RELIABLE",
	PayloadRPCSignal:          "RPC_SIGNAL",
	PayloadStreamReliable:     "STREAM_RELIABLE",
	PayloadStreamLatencyFirst: "STREAM_LATENCY_FIRST",
	PayloadMediaRTP:           "MEDIA_RTP",
}

func (p PayloadType) String() string {
	if int(p) < len(payloadTypeNames) {
		return payloadTypeNames[p]
	}
	return fmt.Sprintf("PayloadType(%d)", uint8(p))
}

// Envelope carries one incoming request.
type Envelope struct {
	RouteKey  string
	Payload   []byte
	RequestID string
}

func NewEnvelope(routeKey string, payload []byte) Envelope {
	return Envelope{
		RouteKey:  routeKey,
		Payload:   payload,
		RequestID: uuid.NewString(),
	}
}

// Context is the capability the actor runtime grants to a running actor.
type Context interface {
	Discover(ctx context.Context, target ActrType) (ActrID, error)
	CallRaw(
		ctx context.Context,
		target ActrID,
		routeKey string,
		payloadType PayloadType,
		payload []byte,
		timeout time.Duration,
	) ([]byte, error)
}
