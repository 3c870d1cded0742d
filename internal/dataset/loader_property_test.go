package dataset

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// csvTable is a generated header plus rows of identifier cells.
type csvTable struct {
	Header []string
	Rows   [][]string
}

func genCSVTable() gopter.Gen {
	return gopter.CombineGens(
		gen.SliceOf(gen.Identifier(), reflect.TypeOf("")).SuchThat(func(v interface{}) bool {
			h := v.([]string)
			if len(h) < 1 || len(h) > 8 {
				return false
			}
			seen := map[string]bool{}
			for _, name := range h {
				if seen[name] {
					return false
				}
				seen[name] = true
			}
			return true
		}),
		gen.IntRange(1, 30),
	).FlatMap(func(v interface{}) gopter.Gen {
		vals := v.([]interface{})
		header := vals[0].([]string)
		rows := vals[1].(int)
		return gen.SliceOfN(rows*len(header), gen.Identifier()).Map(func(cells []string) csvTable {
			t := csvTable{Header: header}
			for r := 0; r < rows; r++ {
				t.Rows = append(t.Rows, cells[r*len(header):(r+1)*len(header)])
			}
			return t
		})
	}, reflect.TypeOf(csvTable{}))
}

func (t csvTable) encode() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Header, ","))
	b.WriteByte('\n')
	for _, row := range t.Rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// Row count and column order survive an encode-then-load round trip for any
// generated table.
func TestLoad_PreservesShapeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	// Keep generated slice sizes within the 1-8 header bound enforced by
	// the SuchThat filter; otherwise nearly every candidate is discarded.
	parameters.MinSize = 1
	parameters.MaxSize = 9
	properties := gopter.NewProperties(parameters)

	properties.Property("row count and column order preserved", prop.ForAll(
		func(tbl csvTable) bool {
			loaded, err := Read(strings.NewReader(tbl.encode()))
			if err != nil {
				return false
			}
			if loaded.RowCount() != len(tbl.Rows) {
				return false
			}
			return reflect.DeepEqual(loaded.ColumnNames(), tbl.Header)
		},
		genCSVTable(),
	))

	properties.TestingRun(t)
}
