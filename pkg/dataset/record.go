package dataset

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/timezombi/shogiops/pkg/shogi"
)

// PositionRecord is one parsed position in a dataset. The packed words hold
// the 256-bit position encoding in little-endian word order.
type PositionRecord struct {
	Sfen       string `parquet:"name=sfen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Turn       string `parquet:"name=turn, type=BYTE_ARRAY, convertedtype=UTF8"`
	MoveNumber int32  `parquet:"name=move_number, type=INT32"`
	HandCount  int32  `parquet:"name=hand_count, type=INT32"`
	Packed0    int64  `parquet:"name=packed0, type=INT64"`
	Packed1    int64  `parquet:"name=packed1, type=INT64"`
	Packed2    int64  `parquet:"name=packed2, type=INT64"`
	Packed3    int64  `parquet:"name=packed3, type=INT64"`
}

// recordFields is the schema contract dataset consumers rely on. The tags on
// PositionRecord must not drift away from it.
var recordFields = []string{
	"sfen",
	"turn",
	"move_number",
	"hand_count",
	"packed0",
	"packed1",
	"packed2",
	"packed3",
}

// RecordFromPosition builds a record for a parsed position. It fails when
// the position cannot be packed (missing kings, impossible material).
func RecordFromPosition(pos shogi.Position) (PositionRecord, error) {
	packed, err := shogi.Pack(pos)
	if err != nil {
		return PositionRecord{}, err
	}
	turn := "b"
	if pos.Turn == shogi.White {
		turn = "w"
	}
	return PositionRecord{
		Sfen:       shogi.MakeSfen(pos),
		Turn:       turn,
		MoveNumber: int32(pos.MoveNumber),
		HandCount:  int32(pos.HandCount()),
		Packed0:    int64(packed.Words[0]),
		Packed1:    int64(packed.Words[1]),
		Packed2:    int64(packed.Words[2]),
		Packed3:    int64(packed.Words[3]),
	}, nil
}

// WritePositions drains records into a snappy-compressed parquet file.
func WritePositions(path string, records <-chan PositionRecord, parallel int64) error {
	if err := validateRecordTags(); err != nil {
		return err
	}

	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(PositionRecord), parallel)
	if err != nil {
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for record := range records {
		if err := parquetWriter.Write(record); err != nil {
			return err
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return err
	}
	return fileWriter.Close()
}

func validateRecordTags() error {
	declared := make(map[string]struct{}, len(recordFields))
	for _, name := range recordFields {
		declared[name] = struct{}{}
	}
	tagged := structParquetFieldNames(PositionRecord{})
	missing := diffKeys(declared, tagged)
	extra := diffKeys(tagged, declared)
	if len(missing) > 0 || len(extra) > 0 {
		return fmt.Errorf("parquet schema mismatch: missing=%v extra=%v", missing, extra)
	}
	return nil
}

func structParquetFieldNames(sample any) map[string]struct{} {
	fields := map[string]struct{}{}
	v := reflect.TypeOf(sample)
	for i := 0; i < v.NumField(); i++ {
		name := parseParquetName(v.Field(i).Tag.Get("parquet"))
		if name != "" {
			fields[name] = struct{}{}
		}
	}
	return fields
}

func parseParquetName(tag string) string {
	if tag == "" {
		return ""
	}
	for _, part := range strings.Split(tag, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && kv[0] == "name" {
			return kv[1]
		}
	}
	return ""
}

func diffKeys(a, b map[string]struct{}) []string {
	var diff []string
	for key := range a {
		if _, ok := b[key]; !ok {
			diff = append(diff, key)
		}
	}
	return diff
}
