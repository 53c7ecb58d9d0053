// pkg/aviation/serialization.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "github.com/vmihailenco/msgpack/v5"

// EncodeEvent/DecodeEvent serialize a single outbound Event for
// transport across a process boundary (a network link, a replay log).
// msgpack round-trips every field of the tagged-union Event struct
// without needing per-variant marshalers.
func EncodeEvent(e Event) ([]byte, error) {
	return msgpack.Marshal(&e)
}

func DecodeEvent(data []byte) (Event, error) {
	var e Event
	err := msgpack.Unmarshal(data, &e)
	return e, err
}

func EncodeEvents(events []Event) ([]byte, error) {
	return msgpack.Marshal(&events)
}

func DecodeEvents(data []byte) ([]Event, error) {
	var events []Event
	err := msgpack.Unmarshal(data, &events)
	return events, err
}
