package core

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS codecs for records persisted by the template library.
// Field order is part of the on-disk format; append new fields at the end.

var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var PointMUS = pointMUS{}

type pointMUS struct{}

func (s pointMUS) Marshal(v Point, bs []byte) (n int) {
	n = raw.Float64.Marshal(v.X, bs)
	return n + raw.Float64.Marshal(v.Y, bs[n:])
}

func (s pointMUS) Unmarshal(bs []byte) (v Point, n int, err error) {
	v.X, n, err = raw.Float64.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Y, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s pointMUS) Size(v Point) (size int) {
	return raw.Float64.Size(v.X) + raw.Float64.Size(v.Y)
}

func (s pointMUS) Skip(bs []byte) (n int, err error) {
	n, err = raw.Float64.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = raw.Float64.Skip(bs[n:])
	n += n1
	return
}

var StrokeMUS = strokeMUS{}

type strokeMUS struct{}

func (s strokeMUS) Marshal(v Stroke, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, p := range v {
		n += PointMUS.Marshal(p, bs[n:])
	}
	return
}

func (s strokeMUS) Unmarshal(bs []byte) (v Stroke, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 || length > len(bs[n:])/16 {
		err = fmt.Errorf("%w: stroke length %d exceeds data", ErrMalformedRecord, length)
		return
	}
	v = make(Stroke, length)
	var n1 int
	for i := range v {
		v[i], n1, err = PointMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s strokeMUS) Size(v Stroke) (size int) {
	size = varint.Int.Size(len(v))
	for _, p := range v {
		size += PointMUS.Size(p)
	}
	return
}

func (s strokeMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

var RawTemplateMUS = rawTemplateMUS{}

type rawTemplateMUS struct{}

func (s rawTemplateMUS) Marshal(v RawTemplate, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += varint.Uint64.Marshal(v.Seq, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += StrokeMUS.Marshal(v.Points, bs[n:])
	return n + varint.Int64.Marshal(timeToMicro(v.InsertedAt), bs[n:])
}

func (s rawTemplateMUS) Unmarshal(bs []byte) (v RawTemplate, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Seq, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Points, n1, err = StrokeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt = microToTime(micros)
	return
}

func (s rawTemplateMUS) Size(v RawTemplate) (size int) {
	size = IDMUS.Size(v.Id)
	size += varint.Uint64.Size(v.Seq)
	size += ord.String.Size(v.Name)
	size += StrokeMUS.Size(v.Points)
	return size + varint.Int64.Size(timeToMicro(v.InsertedAt))
}

func (s rawTemplateMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// Unix micro timestamps, UTC. The zero time round-trips as zero.
func timeToMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func microToTime(micros int64) time.Time {
	if micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}
