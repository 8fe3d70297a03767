// Package pb encodes maze records in the protobuf wire format:
//
//	message Wall { uint32 x = 1; uint32 y = 2; bool horizontal = 3; }
//	message Maze {
//	  string id = 1; uint32 width = 2; uint32 height = 3; sint64 seed = 4;
//	  repeated Wall walls = 5; int64 created_at_ms = 6;
//	}
package pb

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// ContentType is the media type of encoded mazes.
const ContentType = "application/x-protobuf"

const (
	mazeIDField        protowire.Number = 1
	mazeWidthField     protowire.Number = 2
	mazeHeightField    protowire.Number = 3
	mazeSeedField      protowire.Number = 4
	mazeWallsField     protowire.Number = 5
	mazeCreatedAtField protowire.Number = 6

	wallXField          protowire.Number = 1
	wallYField          protowire.Number = 2
	wallHorizontalField protowire.Number = 3
)

var (
	errNegative   = errors.New("negative value in unsigned field")
	errOutOfRange = errors.New("value out of range")
)

// maxSize bounds decoded widths, heights and coordinates.
const maxSize = math.MaxInt32

// decodeSize reads a varint that must fit a non-negative size or coordinate.
func decodeSize(b []byte, field string) (int, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, n, protowire.ParseError(n)
	}
	if v > maxSize {
		return 0, n, fmt.Errorf("%s %d: %w", field, v, errOutOfRange)
	}
	return int(v), n, nil
}

var _ i.MazeEncoder = &Protobuf{}

// Protobuf implements i.MazeEncoder.
type Protobuf struct{}

// ContentType implements i.MazeEncoder.
func (p *Protobuf) ContentType() string { return ContentType }

// MarshalMaze implements i.MazeEncoder.
func (p *Protobuf) MarshalMaze(r *domain.MazeRecord) ([]byte, error) {
	if r.Width < 0 || r.Height < 0 {
		return nil, fmt.Errorf("maze %s: %w", r.ID, errNegative)
	}

	var b []byte
	b = protowire.AppendTag(b, mazeIDField, protowire.BytesType)
	b = protowire.AppendString(b, r.ID.String())
	b = protowire.AppendTag(b, mazeWidthField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Width))
	b = protowire.AppendTag(b, mazeHeightField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Height))
	b = protowire.AppendTag(b, mazeSeedField, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(r.Seed))

	for _, w := range r.Walls {
		if w.X < 0 || w.Y < 0 {
			return nil, fmt.Errorf("wall (%d,%d): %w", w.X, w.Y, errNegative)
		}
		b = protowire.AppendTag(b, mazeWallsField, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalWall(w))
	}

	if !r.CreatedAt.IsZero() {
		b = protowire.AppendTag(b, mazeCreatedAtField, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.CreatedAt.UnixMilli()))
	}
	return b, nil
}

func marshalWall(w domain.WallDoc) []byte {
	var b []byte
	b = protowire.AppendTag(b, wallXField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(w.X))
	b = protowire.AppendTag(b, wallYField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(w.Y))
	if w.Horizontal {
		b = protowire.AppendTag(b, wallHorizontalField, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

// UnmarshalMaze implements i.MazeEncoder. Unknown fields are skipped.
func (p *Protobuf) UnmarshalMaze(b []byte) (*domain.MazeRecord, error) {
	r := &domain.MazeRecord{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == mazeIDField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("maze id: %w", err)
			}
			r.ID = id
			b = b[n:]
		case num == mazeWidthField && typ == protowire.VarintType:
			v, n, err := decodeSize(b, "width")
			if err != nil {
				return nil, err
			}
			r.Width = v
			b = b[n:]
		case num == mazeHeightField && typ == protowire.VarintType:
			v, n, err := decodeSize(b, "height")
			if err != nil {
				return nil, err
			}
			r.Height = v
			b = b[n:]
		case num == mazeSeedField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			r.Seed = protowire.DecodeZigZag(v)
			b = b[n:]
		case num == mazeWallsField && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			w, err := unmarshalWall(raw)
			if err != nil {
				return nil, err
			}
			r.Walls = append(r.Walls, w)
			b = b[n:]
		case num == mazeCreatedAtField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			r.CreatedAt = time.UnixMilli(int64(v)).UTC()
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return r, nil
}

func unmarshalWall(b []byte) (domain.WallDoc, error) {
	var w domain.WallDoc
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return w, protowire.ParseError(n)
		}
		b = b[n:]

		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return w, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		switch num {
		case wallXField:
			v, n, err := decodeSize(b, "wall x")
			if err != nil {
				return w, err
			}
			w.X = v
			b = b[n:]
		case wallYField:
			v, n, err := decodeSize(b, "wall y")
			if err != nil {
				return w, err
			}
			w.Y = v
			b = b[n:]
		default:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return w, protowire.ParseError(n)
			}
			if num == wallHorizontalField {
				w.Horizontal = protowire.DecodeBool(v)
			}
			b = b[n:]
		}
	}
	return w, nil
}
