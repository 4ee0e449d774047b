package btrieve_test

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
)

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func TestPackedDate(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
		want *time.Time
	}{
		{"valid", 1999123100, ptr(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC))},
		{"trailing digits ignored", 2004022977, ptr(time.Date(2004, 2, 29, 0, 0, 0, 0, time.UTC))},
		{"month 13", 1999133100, nil},
		{"month 0", 1999003100, nil},
		{"day 0", 1999120000, nil},
		{"day 32", 1999123200, nil},
		{"non-existent date", 1999023000, nil},
		{"zero", 0, nil},
		{"nine digits", 199912310, nil},
		{"before epoch", 1983123000, nil},
		{"epoch itself", 1983123100, ptr(time.Date(1983, 12, 31, 0, 0, 0, 0, time.UTC))},
	}
	col := btrieve.DateColumn("D", 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := col.Decode(le32(tt.raw), 0)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, got)
		})
	}
}

func TestPackedDate_EncodeRoundTrip(t *testing.T) {
	d := time.Date(2021, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, uint32(2021070400), btrieve.EncodePackedDate(d))
	got, ok := btrieve.DecodePackedDate(btrieve.EncodePackedDate(d))
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestBtrieveDate(t *testing.T) {
	col := btrieve.BtrieveDateColumn("D", 0)

	enc := btrieve.EncodeBtrieveDate(time.Date(2002, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2002, 3, 15, 0, 0, 0, 0, time.UTC), col.Decode(enc[:], 0))

	assert.Nil(t, col.Decode([]byte{0, 0, 0, 0}, 0))
	assert.Nil(t, col.Decode([]byte{31, 2, 0xd2, 0x07}, 0), "31 February")

	old := btrieve.EncodeBtrieveDate(time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Nil(t, col.Decode(old[:], 0))
}

func TestPercent(t *testing.T) {
	col := btrieve.PercentColumn("P", 0)
	assert.Equal(t, 75.5, col.Decode(le32(755), 0))
	assert.Equal(t, 0.0, col.Decode(le32(0), 0))

	var neg int32 = -25
	assert.Equal(t, -2.5, col.Decode(le32(uint32(neg)), 0))
}

func TestRelationType(t *testing.T) {
	col := btrieve.RelationTypeColumn("R", 0)
	tests := []struct {
		raw  uint16
		want domain.RelationType
	}{
		{0, domain.RelationStartFinish},
		{1, domain.RelationStartStart},
		{2, domain.RelationFinishStart},
		{3, domain.RelationFinishFinish},
		{4, domain.RelationStartFinish},
		{99, domain.RelationStartFinish},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, col.Decode(le16(tt.raw), 0), "raw %d", tt.raw)
	}
}

func TestDurationIsSigned(t *testing.T) {
	col := btrieve.DurationColumn("L", 0)
	assert.Equal(t, domain.Days(5), col.Decode(le16(5), 0))

	var neg int16 = -3
	assert.Equal(t, domain.Days(-3), col.Decode(le16(uint16(neg)), 0))
}

func TestIntegersAreUnsigned(t *testing.T) {
	assert.Equal(t, 0xffff, btrieve.ShortColumn("S", 0).Decode([]byte{0xff, 0xff}, 0))
	assert.Equal(t, 0xffffffff, btrieve.IntColumn("I", 0).Decode([]byte{0xff, 0xff, 0xff, 0xff}, 0))
	assert.Equal(t, 0x80, btrieve.ByteColumn("B", 0).Decode([]byte{0x80}, 0))
}

func TestFixedStringIsVerbatim(t *testing.T) {
	col := btrieve.StringColumn("S", 1, 4)
	assert.Equal(t, "AB \x00", col.Decode([]byte("xAB \x00yz"), 0))
}

func TestDecodeOffsetsAreRelativeToRecordStart(t *testing.T) {
	buf := append([]byte{0, 0, 0, 0}, le16(42)...)
	assert.Equal(t, 42, btrieve.ShortColumn("S", 2).Decode(buf, 2))
}

func TestDecodePastBufferIsAbsent(t *testing.T) {
	assert.Nil(t, btrieve.IntColumn("I", 2).Decode([]byte{1, 2, 3, 4}, 0))
	assert.Nil(t, btrieve.StringColumn("S", 0, 10).Decode([]byte("short"), 0))
}

func ptr[T any](v T) *T { return &v }
