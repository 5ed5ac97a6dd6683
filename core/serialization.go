// Copyright 2025 Pico Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"errors"
	"math"
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// ErrTruncatedID indicates a byte slice too short to hold an ID.
var ErrTruncatedID = errors.New("truncated id")

// IDMUS serializes IDs as raw 16-byte values.
var IDMUS = idMUS{}

type idMUS struct{}

var _ mus.Serializer[ID] = IDMUS

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return copy(bs, id[:])
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	if len(bs) < len(id) {
		err = ErrTruncatedID
		return
	}
	n = copy(id[:], bs)
	return
}

func (idMUS) Size(ID) int {
	return 16
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	if len(bs) < 16 {
		return 0, ErrTruncatedID
	}
	return 16, nil
}

// DocumentMUS serializes documents for persistent storage.
// Timestamps are stored with microsecond precision in UTC.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

var _ mus.Serializer[Document] = DocumentMUS

func (documentMUS) Marshal(doc Document, bs []byte) (n int) {
	n = IDMUS.Marshal(doc.Id, bs)
	n += ord.String.Marshal(doc.Text, bs[n:])
	n += varint.Int.Marshal(int(doc.Source), bs[n:])
	n += varint.Int64.Marshal(doc.AddedAt.UnixMicro(), bs[n:])
	n += varint.PositiveInt.Marshal(len(doc.Vector), bs[n:])
	for _, v := range doc.Vector {
		n += varint.Uint32.Marshal(math.Float32bits(v), bs[n:])
	}
	return
}

func (documentMUS) Unmarshal(bs []byte) (doc Document, n int, err error) {
	doc.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	doc.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var source int
	source, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Source = Source(source)
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.AddedAt = time.UnixMicro(micros).UTC()
	var length int
	length, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if length > 0 {
		doc.Vector = make([]float32, length)
		for i := 0; i < length; i++ {
			var bits uint32
			bits, n1, err = varint.Uint32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return
			}
			doc.Vector[i] = math.Float32frombits(bits)
		}
	}
	return
}

func (documentMUS) Size(doc Document) (size int) {
	size = IDMUS.Size(doc.Id)
	size += ord.String.Size(doc.Text)
	size += varint.Int.Size(int(doc.Source))
	size += varint.Int64.Size(doc.AddedAt.UnixMicro())
	size += varint.PositiveInt.Size(len(doc.Vector))
	for _, v := range doc.Vector {
		size += varint.Uint32.Size(math.Float32bits(v))
	}
	return
}

func (documentMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var length int
	length, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < length; i++ {
		n1, err = varint.Uint32.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
